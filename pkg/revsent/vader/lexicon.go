package vader

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:embed data/vader_lexicon.txt
var embeddedLexicon string

//go:embed data/emoji_utf8_lexicon.txt
var embeddedEmojiLexicon string

// ParseLexicon converts tab separated lexicon data ("token<TAB>mean[<TAB>...]")
// into a token -> valence map. Blank lines are skipped.
func ParseLexicon(lexicon string) (map[string]float64, error) {
	lexiconDict := make(map[string]float64)

	for n, line := range strings.Split(lexicon, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, "\t")
		if len(values) < 2 {
			return nil, fmt.Errorf("lexicon line %d: expected token and valence", n+1)
		}

		measure, err := strconv.ParseFloat(strings.TrimSpace(values[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", n+1, err)
		}

		lexiconDict[strings.TrimSpace(values[0])] = measure
	}

	return lexiconDict, nil
}

// ParseEmojiLexicon converts "emoji<TAB>description" lines into a rune ->
// description map. Only single-rune emoji are kept.
func ParseEmojiLexicon(emojiLexicon string) (map[rune]string, error) {
	emojiLexiconDict := make(map[rune]string)

	for n, line := range strings.Split(emojiLexicon, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.SplitN(line, "\t", 2)
		if len(values) < 2 {
			return nil, fmt.Errorf("emoji lexicon line %d: expected emoji and description", n+1)
		}

		emoji := strings.TrimSpace(values[0])
		if utf8.RuneCountInString(emoji) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(emoji)
		emojiLexiconDict[r] = strings.TrimSpace(values[1])
	}

	return emojiLexiconDict, nil
}

func loadLexicon(path string) (map[string]float64, error) {
	if path == "" {
		return ParseLexicon(embeddedLexicon)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLexicon(string(data))
}

func loadEmojiLexicon(path string) (map[rune]string, error) {
	if path == "" {
		return ParseEmojiLexicon(embeddedEmojiLexicon)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEmojiLexicon(string(data))
}
