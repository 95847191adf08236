package vader

import (
	"fmt"
	"math"
	"strings"

	"github.com/gonum/floats"
)

// Polarity is the four-way sentiment score of a text.
// Neg, Neu and Pos are proportions in [0,1]; Compound is the normalized
// weighted sum in [-1,1].
type Polarity struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Map returns the scores keyed by neg, neu, pos and compound.
func (p Polarity) Map() map[string]float64 {
	return map[string]float64{
		"neg":      p.Neg,
		"neu":      p.Neu,
		"pos":      p.Pos,
		"compound": p.Compound,
	}
}

// Options selects lexicon files. Empty paths use the embedded lexicons.
type Options struct {
	LexiconPath      string
	EmojiLexiconPath string
}

// Analyzer gives a sentiment intensity score to sentences.
// It is read-only after construction and safe for concurrent use.
type Analyzer struct {
	lexicon           map[string]float64
	emojiLexicon      map[rune]string
	specialCaseIdioms map[string]float64
}

// New loads the lexicons and returns a ready analyzer.
func New(opts Options) (*Analyzer, error) {
	lexicon, err := loadLexicon(opts.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	emojiLexicon, err := loadEmojiLexicon(opts.EmojiLexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load emoji lexicon: %w", err)
	}

	return &Analyzer{
		lexicon:           lexicon,
		emojiLexicon:      emojiLexicon,
		specialCaseIdioms: SpecialCaseIdioms,
	}, nil
}

// NewDefault returns an analyzer over the embedded lexicons.
func NewDefault() *Analyzer {
	a, err := New(Options{})
	if err != nil {
		panic(err) // embedded data is fixed at build time
	}
	return a
}

// LexiconSize returns the number of scored tokens.
func (a *Analyzer) LexiconSize() int {
	return len(a.lexicon)
}

// Valence returns the raw lexicon valence of token.
func (a *Analyzer) Valence(token string) (float64, bool) {
	v, ok := a.lexicon[token]
	return v, ok
}

// PolarityScores returns a sentiment strength based on the input text.
// Positive values are positive valence, negative values are negative valence.
func (a *Analyzer) PolarityScores(text string) Polarity {
	if strings.Contains(text, "%") {
		text = ReplacePercentages(text)
	}

	text = a.replaceEmoji(text)
	sentiText := NewSentiText(text)

	sentiments := make([]float64, 0, len(sentiText.WordsAndEmoticonsLower))
	for i, word := range sentiText.WordsAndEmoticonsLower {
		// check for lexicon words that may be used as modifiers or negations
		if _, ok := BoosterMap[word]; ok {
			sentiments = append(sentiments, 0)
		} else if i < len(sentiText.WordsAndEmoticonsLower)-1 && word == "kind" && sentiText.WordsAndEmoticonsLower[i+1] == "of" {
			sentiments = append(sentiments, 0)
		} else {
			sentiments = append(sentiments, a.sentimentValence(sentiText, i))
		}
	}

	sentiments = butCheck(sentiText.WordsAndEmoticonsLower, sentiments)
	return a.scoreValence(sentiments, text)
}

// replaceEmoji swaps known emoji for their text description, separated
// from neighbouring characters by a space.
func (a *Analyzer) replaceEmoji(text string) string {
	if len(a.emojiLexicon) == 0 {
		return text
	}

	var b strings.Builder
	prevSpace := true
	replaced := false
	for _, r := range text {
		if description, ok := a.emojiLexicon[r]; ok {
			if !prevSpace {
				b.WriteByte(' ')
			}
			b.WriteString(description)
			prevSpace = false
			replaced = true
			continue
		}
		b.WriteRune(r)
		prevSpace = r == ' '
	}
	if !replaced {
		return text
	}
	return strings.TrimSpace(b.String())
}

func (a *Analyzer) sentimentValence(sentiText *SentiText, i int) float64 {
	words := sentiText.WordsAndEmoticonsLower
	token := words[i]

	value, ok := a.lexicon[token]
	if !ok {
		return 0
	}
	valence := value

	// "no" as negation for an adjacent lexicon item vs "no" as its own stand-alone lexicon item
	if token == "no" && i != len(words)-1 {
		if _, found := a.lexicon[words[i+1]]; found {
			// don't use valence of "no" as a lexicon item; the next item is negated instead
			valence = 0.0
		}
	}
	if (i > 0 && words[i-1] == "no") ||
		(i > 1 && words[i-2] == "no") ||
		(i > 2 && words[i-3] == "no" && (words[i-1] == "or" || words[i-1] == "nor")) {
		valence = value * NegationScale
	}

	// sentiment laden word in ALL CAPS (while others aren't)
	if isUpper(sentiText.WordsAndEmoticons[i]) && sentiText.IsCapDiff {
		if valence > 0 {
			valence += CapsIncr
		} else {
			valence -= CapsIncr
		}
	}

	for startIndex := 0; startIndex < 3; startIndex++ {
		// dampen the scalar modifier of preceding words and emoticons
		// (excluding the ones that immediately precede the item) based
		// on their distance from the current item.
		if i <= startIndex {
			continue
		}
		prev := i - (startIndex + 1)
		if _, ok := a.lexicon[words[prev]]; ok {
			continue
		}

		s := scalarIncDec(sentiText.WordsAndEmoticons[prev], valence, sentiText.IsCapDiff)
		if startIndex == 1 && s != 0 {
			s *= 0.95
		}
		if startIndex == 2 && s != 0 {
			s *= 0.9
		}

		valence += s
		valence = negationCheck(valence, words, startIndex, i)
		if startIndex == 2 {
			valence = a.specialIdiomsCheck(valence, words, i)
		}
	}

	return a.leastCheck(valence, words, i)
}

func (a *Analyzer) leastCheck(valence float64, words []string, i int) float64 {
	// negation case using "least"
	if i > 1 {
		if _, ok := a.lexicon[words[i-1]]; !ok && words[i-1] == "least" {
			if words[i-2] != "at" && words[i-2] != "very" {
				valence = valence * NegationScale
			}
		}
	} else if i > 0 {
		if _, ok := a.lexicon[words[i-1]]; !ok && words[i-1] == "least" {
			valence = valence * NegationScale
		}
	}

	return valence
}

// butCheck applies the contrastive conjunction rule: sentiment before the
// first "but" is halved, sentiment after it is boosted by half.
func butCheck(words []string, sentiments []float64) []float64 {
	for bi, word := range words {
		if word != "but" {
			continue
		}
		for si, sentiment := range sentiments {
			if si < bi {
				sentiments[si] = sentiment * 0.5
			} else if si > bi {
				sentiments[si] = sentiment * 1.5
			}
		}
		break
	}

	return sentiments
}

func (a *Analyzer) specialIdiomsCheck(valence float64, words []string, i int) float64 {
	oneZero := words[i-1] + " " + words[i]
	twoOneZero := words[i-2] + " " + words[i-1] + " " + words[i]
	twoOne := words[i-2] + " " + words[i-1]
	threeTwoOne := words[i-3] + " " + words[i-2] + " " + words[i-1]
	threeTwo := words[i-3] + " " + words[i-2]
	sequences := []string{oneZero, twoOneZero, twoOne, threeTwoOne, threeTwo}

	for _, seq := range sequences {
		if value, ok := a.specialCaseIdioms[seq]; ok {
			valence = value
			break
		}
	}

	if len(words)-1 > i {
		zeroOne := words[i] + " " + words[i+1]
		if value, ok := a.specialCaseIdioms[zeroOne]; ok {
			valence = value
		}
	}

	if len(words)-1 > i+1 {
		zeroOneTwo := words[i] + " " + words[i+1] + " " + words[i+2]
		if value, ok := a.specialCaseIdioms[zeroOneTwo]; ok {
			valence = value
		}
	}

	// booster/dampener bi-grams such as 'sort of' or 'kind of'
	for _, ngram := range []string{threeTwoOne, threeTwo, twoOne} {
		if value, ok := BoosterMap[ngram]; ok {
			valence = valence + value
		}
	}

	return valence
}

// negationCheck flips valence when a negation precedes the item.
func negationCheck(valence float64, words []string, startIndex int, i int) float64 {
	switch startIndex {
	case 0:
		if ContainsNegation([]string{words[i-1]}) { // 1 word preceding lexicon word (w/o stopwords)
			return valence * NegationScale
		}
	case 1:
		if words[i-2] == "never" && (words[i-1] == "so" || words[i-1] == "this") {
			return valence * 1.25
		} else if words[i-2] == "without" && words[i-1] == "doubt" {
			return valence
		} else if ContainsNegation([]string{words[i-2]}) { // 2 words preceding the lexicon word position
			return valence * NegationScale
		}
	case 2:
		if words[i-3] == "never" &&
			((words[i-2] == "so" || words[i-2] == "this") ||
				(words[i-1] == "so" || words[i-1] == "this")) {
			return valence * 1.25
		} else if words[i-3] == "without" && (words[i-2] == "doubt" || words[i-1] == "doubt") {
			return valence
		} else if ContainsNegation([]string{words[i-3]}) { // 3 words preceding the lexicon word position
			return valence * NegationScale
		}
	}

	return valence
}

// punctuationEmphasis adds emphasis from exclamation points and question marks
func punctuationEmphasis(text string) float64 {
	return amplifyEP(text) + amplifyQM(text)
}

// amplifyEP adds emphasis for exclamation points (up to 4 of them)
func amplifyEP(text string) float64 {
	epCount := strings.Count(text, "!")
	if epCount > MaxExclamations {
		epCount = MaxExclamations
	}

	// empirically derived mean sentiment intensity rating increase for exclamation points
	return float64(epCount) * 0.292
}

// amplifyQM adds emphasis for question marks (2 or 3+)
func amplifyQM(text string) float64 {
	qmCount := strings.Count(text, "?")
	if qmCount > 1 {
		if qmCount <= MaxQuestions {
			return float64(qmCount) * 0.18
		}
		return 0.96
	}

	return 0.0
}

// siftSentimentScores separates positive and negative sentiment sums
func siftSentimentScores(sentiments []float64) (float64, float64, float64) {
	posSum := 0.0
	negSum := 0.0
	neuCount := 0.0

	for _, sentiment := range sentiments {
		if sentiment > 0 {
			posSum += sentiment + 1 // compensates for neutral words that are counted as 1
		} else if sentiment < 0 {
			negSum += sentiment - 1 // when used with math.Abs, compensates for neutrals
		} else {
			neuCount++
		}
	}

	return posSum, negSum, neuCount
}

func (a *Analyzer) scoreValence(sentiments []float64, text string) Polarity {
	var p Polarity
	if len(sentiments) == 0 {
		return p
	}

	sumS := floats.Sum(sentiments)

	// compute and add emphasis from punctuation in text
	punctEmphAmplifier := punctuationEmphasis(text)
	if sumS > 0 {
		sumS += punctEmphAmplifier
	} else if sumS < 0 {
		sumS -= punctEmphAmplifier
	}
	compound := Normalize(sumS)

	// discriminate between positive, negative and neutral sentiment scores
	posSum, negSum, neuCount := siftSentimentScores(sentiments)
	if posSum > math.Abs(negSum) {
		posSum += punctEmphAmplifier
	} else if posSum < math.Abs(negSum) {
		negSum -= punctEmphAmplifier
	}

	total := posSum + math.Abs(negSum) + neuCount

	p.Pos = floats.Round(math.Abs(posSum/total), 3)
	p.Neg = floats.Round(math.Abs(negSum/total), 3)
	p.Neu = floats.Round(math.Abs(neuCount/total), 3)
	p.Compound = floats.Round(compound, 4)
	return p
}

// scalarIncDec checks if the preceding word increases, decreases, or
// negates/nullifies the valence
func scalarIncDec(word string, valence float64, isCapDiff bool) float64 {
	value, ok := BoosterMap[strings.ToLower(word)]
	if !ok {
		return 0
	}

	scalar := value
	if valence < 0 {
		scalar *= -1
	}
	// booster/dampener word in ALLCAPS (while others aren't)
	if isUpper(word) && isCapDiff {
		if valence > 0 {
			scalar += CapsIncr
		} else {
			scalar -= CapsIncr
		}
	}

	return scalar
}
