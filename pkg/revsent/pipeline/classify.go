package pipeline

// Label is the sentiment class of a review.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Labels lists every label in output order.
var Labels = []Label{Positive, Neutral, Negative}

// Classify maps a compound score to a label. Only an exact zero is neutral.
func Classify(compound float64) Label {
	switch {
	case compound > 0:
		return Positive
	case compound == 0:
		return Neutral
	default:
		return Negative
	}
}

func (l Label) String() string {
	return string(l)
}
