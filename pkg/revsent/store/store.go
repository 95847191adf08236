package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/revsent/pkg/revsent/pipeline"
)

// Store persists pipeline runs and their per-row scores
type Store interface {
	Close() error

	// SaveRun stores a run and returns its ID. An empty run.ID is assigned.
	SaveRun(ctx context.Context, run Run) (string, error)
	// GetRun returns run metadata and vocabulary, without scores.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first; limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// RunScores returns the scores of a run in row order.
	RunScores(ctx context.Context, id string) ([]Score, error)
}

// Run is one stored pipeline execution
type Run struct {
	ID         string
	Input      string
	Output     string
	StartedAt  time.Time
	Elapsed    time.Duration
	Rows       int
	Threshold  int64
	Labels     map[string]int64
	Scores     []Score
	Vocabulary []VocabEntry
}

// Score is the polarity and label of one row
type Score struct {
	Row       int     `json:"row"`
	Lemma     string  `json:"lemma"`
	Neg       float64 `json:"neg"`
	Neu       float64 `json:"neu"`
	Pos       float64 `json:"pos"`
	Compound  float64 `json:"compound"`
	Sentiment string  `json:"sentiment"`
}

// VocabEntry is a token that passed the frequency filter
type VocabEntry struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// FromResult converts a pipeline result into a storable run
func FromResult(res pipeline.Result) Run {
	run := Run{
		Input:     res.Input,
		Output:    res.Output,
		StartedAt: res.StartedAt,
		Elapsed:   res.Elapsed,
		Rows:      len(res.Records),
		Threshold: res.Threshold,
		Labels:    make(map[string]int64, len(pipeline.Labels)),
		Scores:    make([]Score, len(res.Records)),
	}
	for _, l := range pipeline.Labels {
		run.Labels[l.String()] = 0
	}

	for i, r := range res.Records {
		run.Labels[r.Sentiment.String()]++
		run.Scores[i] = Score{
			Row:       r.Index,
			Lemma:     r.Lemma,
			Neg:       r.Polarity.Neg,
			Neu:       r.Polarity.Neu,
			Pos:       r.Polarity.Pos,
			Compound:  r.Polarity.Compound,
			Sentiment: r.Sentiment.String(),
		}
	}

	if res.Dist != nil {
		for _, e := range res.Dist.Above(res.Threshold) {
			run.Vocabulary = append(run.Vocabulary, VocabEntry{Token: e.Token, Count: e.Count})
		}
	}
	return run
}

// IDGenerator issues lexically sortable run IDs. Safe for concurrent use.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator with monotonic entropy
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh ID for time t. Times before the Unix epoch use now.
func (g *IDGenerator) New(t time.Time) string {
	if t.Unix() < 0 {
		t = time.Now()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}
