package pipeline

import (
	"strings"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/ingest"
	"github.com/cognicore/revsent/pkg/revsent/lemma"
	"github.com/cognicore/revsent/pkg/revsent/vader"
)

// Normalize casts every comment to text, so missing cells read "nan", then
// lower-cases it (and optionally strips markup).
func Normalize(records []Record, n ingest.Normalizer) {
	for i := range records {
		records[i].Comments = n.Normalize(ingest.CastText(records[i].Comments))
	}
}

// Tokenize fills Tokens with the stopword-filtered word tokens of each
// comment and TokensString with their space-joined form.
func Tokenize(records []Record, tok *ingest.Tokenizer) {
	for i := range records {
		records[i].Tokens = tok.Tokenize(records[i].Comments)
		records[i].TokensString = ingest.Join(records[i].Tokens)
	}
}

// BuildDist counts tokens over the whole corpus. The rows' token strings
// are joined and split on whitespace again before counting.
func BuildDist(records []Record) *freq.Dist {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.TokensString
	}
	return freq.Build(ingest.WhitespaceTokenize(strings.Join(parts, " ")))
}

// FilterFrequent keeps the tokens of each row whose corpus count exceeds
// threshold and stores them space-joined in FreqDist.
func FilterFrequent(records []Record, dist *freq.Dist, threshold int64) {
	for i := range records {
		records[i].FreqDist = ingest.Join(dist.Keep(records[i].Tokens, threshold))
	}
}

// Lemmatize reduces FreqDist to its lemma. By default the whole string is a
// single form; perToken lemmatizes each word separately.
func Lemmatize(records []Record, lem *lemma.Lemmatizer, perToken bool) {
	for i := range records {
		if perToken {
			records[i].Lemma = lem.LemmatizeTokens(records[i].FreqDist)
		} else {
			records[i].Lemma = lem.Lemmatize(records[i].FreqDist)
		}
	}
}

// Score computes the polarity of each lemma string.
func Score(records []Record, a *vader.Analyzer) {
	for i := range records {
		records[i].Polarity = a.PolarityScores(records[i].Lemma)
	}
}

// ClassifyAll labels every record from its compound score.
func ClassifyAll(records []Record) {
	for i := range records {
		records[i].Sentiment = Classify(records[i].Polarity.Compound)
	}
}
