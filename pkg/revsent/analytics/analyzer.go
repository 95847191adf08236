package analytics

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/gonum/floats"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
)

// DefaultTopK is the number of tokens listed in a report.
const DefaultTopK = 20

// Analyzer aggregates row-level sentiment stats.
type Analyzer struct {
	totalRows   int64
	emptyLemma  int64
	labels      map[pipeline.Label]int64
	compounds   []float64
	tokenDF     map[string]int64                    // rows containing the token
	tokenLabels map[string]map[pipeline.Label]int64 // label counts of those rows
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		labels:      make(map[pipeline.Label]int64),
		tokenDF:     make(map[string]int64),
		tokenLabels: make(map[string]map[pipeline.Label]int64),
	}
}

// Process consumes one scored record.
func (a *Analyzer) Process(r pipeline.Record) {
	a.totalRows++
	a.labels[r.Sentiment]++
	a.compounds = append(a.compounds, r.Polarity.Compound)
	if r.Lemma == "" {
		a.emptyLemma++
	}

	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(r.FreqDist) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		a.tokenDF[tok]++
		if a.tokenLabels[tok] == nil {
			a.tokenLabels[tok] = make(map[pipeline.Label]int64)
		}
		a.tokenLabels[tok][r.Sentiment]++
	}
}

// TokenSentiment is the label spread of the rows a token appears in.
type TokenSentiment struct {
	Token    string `json:"token"`
	Rows     int64  `json:"rows"`
	Positive int64  `json:"positive"`
	Neutral  int64  `json:"neutral"`
	Negative int64  `json:"negative"`
}

// Report summarises a run.
type Report struct {
	TotalRows      int64            `json:"total_rows"`
	Labels         map[string]int64 `json:"labels"`
	MeanCompound   float64          `json:"mean_compound"`
	MinCompound    float64          `json:"min_compound"`
	MaxCompound    float64          `json:"max_compound"`
	EmptyLemmaRows int64            `json:"empty_lemma_rows"`
	TokenCount     int64            `json:"token_count"`
	DistinctTokens int              `json:"distinct_tokens"`
	Threshold      int64            `json:"threshold"`
	VocabularySize int              `json:"vocabulary_size"`
	TopTokens      []freq.Entry     `json:"top_tokens"`
	TokenSentiment []TokenSentiment `json:"token_sentiment"`
}

// Report builds a summary. dist may be nil when no corpus stats are wanted.
func (a *Analyzer) Report(dist *freq.Dist, threshold int64, topK int) Report {
	if topK <= 0 {
		topK = DefaultTopK
	}

	rep := Report{
		TotalRows:      a.totalRows,
		Labels:         make(map[string]int64, len(pipeline.Labels)),
		EmptyLemmaRows: a.emptyLemma,
		Threshold:      threshold,
		TopTokens:      []freq.Entry{},
	}
	for _, l := range pipeline.Labels {
		rep.Labels[l.String()] = a.labels[l]
	}

	if len(a.compounds) > 0 {
		rep.MeanCompound = floats.Round(floats.Sum(a.compounds)/float64(len(a.compounds)), 4)
		rep.MinCompound = floats.Min(a.compounds)
		rep.MaxCompound = floats.Max(a.compounds)
	}

	if dist != nil {
		rep.TokenCount = dist.N()
		rep.DistinctTokens = dist.B()
		above := dist.Above(threshold)
		rep.VocabularySize = len(above)
		if len(above) > topK {
			above = above[:topK]
		}
		rep.TopTokens = above
	}

	rep.TokenSentiment = a.topTokenSentiment(topK)
	return rep
}

func (a *Analyzer) topTokenSentiment(k int) []TokenSentiment {
	out := make([]TokenSentiment, 0, len(a.tokenDF))
	for tok, df := range a.tokenDF {
		labels := a.tokenLabels[tok]
		out = append(out, TokenSentiment{
			Token:    tok,
			Rows:     df,
			Positive: labels[pipeline.Positive],
			Neutral:  labels[pipeline.Neutral],
			Negative: labels[pipeline.Negative],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rows != out[j].Rows {
			return out[i].Rows > out[j].Rows
		}
		return out[i].Token < out[j].Token
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// Summarize runs every record of res through a fresh analyzer.
func Summarize(res pipeline.Result, topK int) Report {
	a := NewAnalyzer()
	for _, r := range res.Records {
		a.Process(r)
	}
	return a.Report(res.Dist, res.Threshold, topK)
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
