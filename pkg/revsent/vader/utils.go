package vader

import (
	"math"
	"strings"
)

// Normalize the score to be between -1 and 1 using an alpha that
// approximates the max expected value
func Normalize(score float64) float64 {
	normalizedScore := score / math.Sqrt((score*score)+float64(Alpha))

	if normalizedScore < -1.0 {
		return -1.0
	} else if normalizedScore > 1.0 {
		return 1.0
	}
	return normalizedScore
}

// ReplacePercentages finds percent differences (+2%, -2% etc.)
// and replaces them with placeholders from the lexicon
func ReplacePercentages(text string) string {
	text = PositivePercentageRegexp.ReplaceAllString(text, " xpositivepercentx ")
	text = NegativePercentageRegexp.ReplaceAllString(text, " xnegativepercentx ")

	return text
}

// ContainsNegation reports whether the input contains negation words
func ContainsNegation(inputWords []string) bool {
	for i, word := range inputWords {
		word = strings.ToLower(word)
		if _, ok := negationSet[word]; ok {
			return true
		}

		if word == "least" {
			if i > 0 && inputWords[i-1] != "at" && inputWords[i-1] != "very" {
				return true
			}
		}

		if IncludeNt && strings.Contains(word, "n't") {
			return true
		}
	}

	return false
}
