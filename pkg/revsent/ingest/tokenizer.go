package ingest

import (
	"regexp"
	"strings"

	"github.com/cognicore/revsent/internal/htmltext"
	"github.com/cognicore/revsent/pkg/revsent/stoplist"
)

// WordPattern matches maximal runs of word characters ([0-9A-Za-z_]).
const WordPattern = `\w+`

// Normalizer prepares raw review text for tokenization.
type Normalizer struct {
	// StripHTML removes markup and decodes entities before lower-casing.
	StripHTML bool
}

// Normalize lower-cases text, optionally stripping HTML first.
func (n Normalizer) Normalize(text string) string {
	if n.StripHTML {
		text = htmltext.Strip(text)
	}
	return strings.ToLower(text)
}

// MissingText is the text a missing cell is cast to.
const MissingText = "nan"

// missingMarkers are the cell values read as a missing value.
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := missingMarkers[cell]
	return ok
}

// CastText returns cell as review text; missing values become MissingText.
func CastText(cell string) string {
	if IsMissing(cell) {
		return MissingText
	}
	return cell
}

// Normalize lower-cases text.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// RegexpTokenizer extracts every non-overlapping match of a pattern.
type RegexpTokenizer struct {
	re *regexp.Regexp
}

// NewRegexpTokenizer compiles pattern into a tokenizer.
func NewRegexpTokenizer(pattern string) (*RegexpTokenizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexpTokenizer{re: re}, nil
}

// NewWordTokenizer returns a tokenizer for WordPattern.
func NewWordTokenizer() *RegexpTokenizer {
	return &RegexpTokenizer{re: regexp.MustCompile(WordPattern)}
}

// Tokenize returns the matches in order of appearance.
// Empty input yields an empty, non-nil slice.
func (t *RegexpTokenizer) Tokenize(text string) []string {
	matches := t.re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// Tokenizer combines word extraction with stopword removal.
type Tokenizer struct {
	words *RegexpTokenizer
	stops *stoplist.Manager
}

// NewTokenizer creates a tokenizer that drops tokens found in stops.
// A nil manager keeps every token.
func NewTokenizer(stops *stoplist.Manager) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return &Tokenizer{
		words: NewWordTokenizer(),
		stops: stops,
	}
}

// NewEnglishTokenizer returns a \w+ tokenizer over the English stoplist.
func NewEnglishTokenizer() *Tokenizer {
	return NewTokenizer(stoplist.NewEnglish())
}

// Split extracts word tokens without stopword filtering.
func (t *Tokenizer) Split(text string) []string {
	return t.words.Tokenize(text)
}

// Filter removes stopwords from tokens.
func (t *Tokenizer) Filter(tokens []string) []string {
	return t.stops.Filter(tokens)
}

// Tokenize splits text into word tokens and removes stopwords.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.Filter(t.Split(text))
}

// Stoplist returns the stopword manager in use.
func (t *Tokenizer) Stoplist() *stoplist.Manager {
	return t.stops
}

// Join rejoins tokens with single spaces.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// WhitespaceTokenize splits text on runs of whitespace.
func WhitespaceTokenize(text string) []string {
	return strings.Fields(text)
}
