package pipeline

import "github.com/cognicore/revsent/pkg/revsent/vader"

// Record is one review row as it moves through the stages. Each field is
// filled by the stage named in its comment; later stages only read earlier ones.
type Record struct {
	Index        int            // row position in the input table
	Comments     string         // normalize
	Tokens       []string       // tokenize, then stopword filter
	TokensString string         // join
	FreqDist     string         // frequency filter
	Lemma        string         // lemmatize
	Polarity     vader.Polarity // score
	Sentiment    Label          // classify
}

func newRecords(comments []string) []Record {
	records := make([]Record, len(comments))
	for i, c := range comments {
		records[i] = Record{Index: i, Comments: c}
	}
	return records
}
