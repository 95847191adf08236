package vader

import (
	"fmt"
	"regexp"
)

const (
	// empirically derived mean sentiment intensity rating increase for booster words
	BoostIncr = 0.293
	BoostDecr = -0.293

	// empirically derived mean sentiment intensity rating increase for using ALLCAPs to emphasize a word
	CapsIncr      = 0.733
	NegationScale = -0.74

	Alpha     = 15   // constant for normalize
	IncludeNt = true // flag to check "n't" in negated

	MaxExclamations = 4
	MaxQuestions    = 3
)

// Match all undesirable punctuation
var PunctuationRegexp = regexp.MustCompile(fmt.Sprintf("[%s]", regexp.QuoteMeta(`!"#$%&'()*+,-./:;<=>?@[\]^_{|}~`+"`")))

var PositivePercentageRegexp = regexp.MustCompile(`(\(|\s)*(\+(\d+|\d+(\.|\,)\d+)(\%|\s\%))(\)|\s)*`)
var NegativePercentageRegexp = regexp.MustCompile(`(\(|\s)*(\-(\d+|\d+(\.|\,)\d+)(\%|\s\%))(\)|\s)*`)

var Negations = []string{"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"ain't", "aren't", "can't", "couldn't", "daren't", "didn't", "doesn't",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"don't", "hadn't", "hasn't", "haven't", "isn't", "mightn't", "mustn't",
	"neednt", "needn't", "never", "none", "nope", "nor", "not", "nothing", "nowhere",
	"oughtnt", "shant", "shouldnt", "uhuh", "wasnt", "werent",
	"oughtn't", "shan't", "shouldn't", "uh-uh", "wasn't", "weren't",
	"without", "wont", "wouldnt", "won't", "wouldn't", "rarely", "seldom", "despite"}

var negationSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Negations))
	for _, w := range Negations {
		set[w] = struct{}{}
	}
	return set
}()

// booster/dampener 'intensifiers' or 'degree adverbs'
var BoosterMap = map[string]float64{"absolutely": BoostIncr, "amazingly": BoostIncr, "awfully": BoostIncr, "completely": BoostIncr,
	"considerable": BoostIncr, "considerably": BoostIncr, "decidedly": BoostIncr, "deeply": BoostIncr, "effing": BoostIncr,
	"enormous": BoostIncr, "enormously": BoostIncr, "entirely": BoostIncr, "especially": BoostIncr, "exceptional": BoostIncr,
	"exceptionally": BoostIncr, "extreme": BoostIncr, "extremely": BoostIncr, "fabulously": BoostIncr, "flipping": BoostIncr,
	"flippin": BoostIncr, "frackin": BoostIncr, "fracking": BoostIncr, "fricking": BoostIncr, "frickin": BoostIncr,
	"frigging": BoostIncr, "friggin": BoostIncr, "fully": BoostIncr, "fuckin": BoostIncr, "fucking": BoostIncr,
	"fuggin": BoostIncr, "fugging": BoostIncr, "greatly": BoostIncr, "hella": BoostIncr, "highly": BoostIncr,
	"hugely": BoostIncr, "incredible": BoostIncr, "incredibly": BoostIncr, "intensely": BoostIncr, "major": BoostIncr,
	"majorly": BoostIncr, "more": BoostIncr, "most": BoostIncr, "particularly": BoostIncr, "purely": BoostIncr,
	"quite": BoostIncr, "really": BoostIncr, "remarkably": BoostIncr, "so": BoostIncr, "substantially": BoostIncr,
	"thoroughly": BoostIncr, "total": BoostIncr, "totally": BoostIncr, "tremendous": BoostIncr, "tremendously": BoostIncr,
	"uber": BoostIncr, "unbelievably": BoostIncr, "unusually": BoostIncr, "utter": BoostIncr, "utterly": BoostIncr,
	"very": BoostIncr,
	"almost": BoostDecr, "barely": BoostDecr, "hardly": BoostDecr, "just enough": BoostDecr, "kind of": BoostDecr,
	"kinda": BoostDecr, "kindof": BoostDecr, "kind-of": BoostDecr, "less": BoostDecr, "little": BoostDecr,
	"marginal": BoostDecr, "marginally": BoostDecr, "occasional": BoostDecr, "occasionally": BoostDecr, "partly": BoostDecr,
	"scarce": BoostDecr, "scarcely": BoostDecr, "slight": BoostDecr, "slightly": BoostDecr, "somewhat": BoostDecr,
	"sort of": BoostDecr, "sorta": BoostDecr, "sortof": BoostDecr, "sort-of": BoostDecr,
}

// special case idioms containing lexicon words
var SpecialCaseIdioms = map[string]float64{
	"the shit":      3,
	"the bomb":      3,
	"bad ass":       1.5,
	"badass":        1.5,
	"bus stop":      0.0,
	"yeah right":    -2,
	"kiss of death": -1.5,
	"to die for":    3,
	"beating heart": 3.1,
	"broken heart":  -2.9,
}
