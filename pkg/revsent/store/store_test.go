package store

import (
	"testing"
	"time"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
	"github.com/cognicore/revsent/pkg/revsent/vader"
)

func TestFromResult(t *testing.T) {
	res := pipeline.Result{
		Input:     "reviews.csv",
		Output:    "final_reviews.csv",
		StartedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:   time.Second,
		Threshold: 2,
		Dist:      freq.Build([]string{"great", "great", "great", "room", "room"}),
		Records: []pipeline.Record{
			{Index: 0, Lemma: "great great great", Polarity: vader.Polarity{Pos: 1, Compound: 0.9}, Sentiment: pipeline.Positive},
			{Index: 1, Lemma: "", Sentiment: pipeline.Neutral},
		},
	}

	run := FromResult(res)

	if run.Rows != 2 || run.Input != "reviews.csv" || run.Threshold != 2 {
		t.Errorf("Unexpected metadata: %+v", run)
	}
	if run.Labels["positive"] != 1 || run.Labels["neutral"] != 1 || run.Labels["negative"] != 0 {
		t.Errorf("Unexpected labels: %v", run.Labels)
	}
	if _, ok := run.Labels["negative"]; !ok {
		t.Error("Every label should be present")
	}
	if len(run.Scores) != 2 || run.Scores[0].Compound != 0.9 || run.Scores[0].Sentiment != "positive" {
		t.Errorf("Unexpected scores: %+v", run.Scores)
	}
	if len(run.Vocabulary) != 1 || run.Vocabulary[0] != (VocabEntry{Token: "great", Count: 3}) {
		t.Errorf("Vocabulary should hold tokens over the threshold: %v", run.Vocabulary)
	}
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator()
	now := time.Now()

	a := g.New(now)
	b := g.New(now)
	if len(a) != 26 || a == b {
		t.Fatalf("Expected distinct ULIDs, got %q %q", a, b)
	}
	if b <= a {
		t.Errorf("IDs within one millisecond should increase: %q then %q", a, b)
	}

	if id := g.New(time.Time{}); len(id) != 26 {
		t.Errorf("Zero time should still produce an ID, got %q", id)
	}
}
