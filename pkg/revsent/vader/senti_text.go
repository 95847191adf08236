package vader

import (
	"strings"
	"unicode"
)

// SentiText holds the words and emoticons of a text in original and lower case.
type SentiText struct {
	WordsAndEmoticons      []string
	WordsAndEmoticonsLower []string
	IsCapDiff              bool
}

func NewSentiText(text string) *SentiText {
	wordsAndEmoticons := CleanWordsAndEmoticons(text)

	wordsAndEmoticonsLower := make([]string, 0, len(wordsAndEmoticons))
	for _, w := range wordsAndEmoticons {
		wordsAndEmoticonsLower = append(wordsAndEmoticonsLower, strings.ToLower(w))
	}

	return &SentiText{
		WordsAndEmoticons:      wordsAndEmoticons,
		WordsAndEmoticonsLower: wordsAndEmoticonsLower,
		IsCapDiff:              IsAllCapDiff(wordsAndEmoticons),
	}
}

// CleanWordsAndEmoticons removes leading and trailing punctuation from each
// whitespace-separated word. Contractions and most emoticons survive;
// short results (<= 2 chars) keep their punctuation so ":)" stays intact.
// Single-character words are dropped.
func CleanWordsAndEmoticons(text string) []string {
	words := strings.Fields(text)

	cleanWords := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) <= 1 {
			continue
		}

		cleanWord := strings.TrimFunc(word, isPunct)
		if len([]rune(cleanWord)) <= 2 {
			cleanWords = append(cleanWords, word)
		} else {
			cleanWords = append(cleanWords, cleanWord)
		}
	}

	return cleanWords
}

func isPunct(r rune) bool {
	if r > unicode.MaxASCII {
		return r == '‘' || r == '’'
	}
	return PunctuationRegexp.MatchString(string(r))
}

// IsAllCapDiff reports whether some, but not all, words are in ALL CAPS.
func IsAllCapDiff(words []string) bool {
	allCaps := 0
	for _, word := range words {
		if isUpper(word) {
			allCaps++
		}
	}
	diff := len(words) - allCaps
	return diff > 0 && diff < len(words)
}

// isUpper reports whether word has at least one cased letter and no lower-case ones.
func isUpper(word string) bool {
	cased := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
