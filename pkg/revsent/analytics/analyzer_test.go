package analytics

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
	"github.com/cognicore/revsent/pkg/revsent/vader"
)

func record(freqDist string, compound float64) pipeline.Record {
	return pipeline.Record{
		FreqDist:  freqDist,
		Lemma:     freqDist,
		Polarity:  vader.Polarity{Compound: compound},
		Sentiment: pipeline.Classify(compound),
	}
}

func TestAnalyzerReport(t *testing.T) {
	a := NewAnalyzer()
	a.Process(record("great great host", 0.8))
	a.Process(record("great room", 0.6))
	a.Process(record("room", -0.2))
	a.Process(record("", 0))

	dist := freq.Build([]string{"great", "great", "host", "great", "room", "room"})
	rep := a.Report(dist, 1, 10)

	if rep.TotalRows != 4 {
		t.Fatalf("expected 4 rows, got %d", rep.TotalRows)
	}
	if rep.Labels["positive"] != 2 || rep.Labels["negative"] != 1 || rep.Labels["neutral"] != 1 {
		t.Errorf("unexpected label counts: %v", rep.Labels)
	}
	if rep.MeanCompound != 0.3 {
		t.Errorf("expected mean 0.3, got %v", rep.MeanCompound)
	}
	if rep.MinCompound != -0.2 || rep.MaxCompound != 0.8 {
		t.Errorf("unexpected min/max: %v %v", rep.MinCompound, rep.MaxCompound)
	}
	if rep.EmptyLemmaRows != 1 {
		t.Errorf("expected 1 empty lemma row, got %d", rep.EmptyLemmaRows)
	}
	if rep.TokenCount != 6 || rep.DistinctTokens != 3 {
		t.Errorf("unexpected corpus stats: %d %d", rep.TokenCount, rep.DistinctTokens)
	}
	if rep.VocabularySize != 2 {
		t.Errorf("expected 2 tokens over threshold, got %d", rep.VocabularySize)
	}
	if len(rep.TopTokens) != 2 || rep.TopTokens[0].Token != "great" {
		t.Errorf("unexpected top tokens: %v", rep.TopTokens)
	}

	// great and room both appear in 2 rows; ties break alphabetically
	ts := rep.TokenSentiment
	if len(ts) != 3 || ts[0].Token != "great" || ts[1].Token != "room" || ts[2].Token != "host" {
		t.Fatalf("unexpected token sentiment order: %+v", ts)
	}
	if ts[0].Positive != 2 || ts[0].Rows != 2 {
		t.Errorf("great should appear in 2 positive rows: %+v", ts[0])
	}
	if ts[1].Positive != 1 || ts[1].Negative != 1 {
		t.Errorf("room should have one positive and one negative row: %+v", ts[1])
	}
}

func TestAnalyzerTopK(t *testing.T) {
	a := NewAnalyzer()
	a.Process(record("a b c d", 0.1))

	rep := a.Report(nil, 2, 2)
	if len(rep.TokenSentiment) != 2 {
		t.Errorf("expected 2 token entries, got %d", len(rep.TokenSentiment))
	}
	if rep.TokenCount != 0 || len(rep.TopTokens) != 0 {
		t.Errorf("nil dist should give empty corpus stats: %+v", rep)
	}
}

func TestEmptyReport(t *testing.T) {
	rep := NewAnalyzer().Report(nil, 2, 0)
	if rep.TotalRows != 0 || rep.MeanCompound != 0 {
		t.Errorf("unexpected empty report: %+v", rep)
	}
	for _, l := range []string{"positive", "neutral", "negative"} {
		if _, ok := rep.Labels[l]; !ok {
			t.Errorf("label %s should be present with zero count", l)
		}
	}
}

func TestSummarizeAndJSON(t *testing.T) {
	res := pipeline.Result{
		Records:   []pipeline.Record{record("good good", 0.5), record("bad", -0.5)},
		Dist:      freq.Build([]string{"good", "good", "bad"}),
		Threshold: 1,
	}

	rep := Summarize(res, 5)
	if rep.TotalRows != 2 || rep.VocabularySize != 1 {
		t.Fatalf("unexpected summary: %+v", rep)
	}

	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"total_rows", "labels", "mean_compound", "top_tokens", "token_sentiment"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}
}
