package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/ingest"
	"github.com/cognicore/revsent/pkg/revsent/lemma"
	"github.com/cognicore/revsent/pkg/revsent/table"
	"github.com/cognicore/revsent/pkg/revsent/vader"
)

const (
	DefaultColumn          = "comments"
	DefaultSentimentColumn = "sentiment"
)

// Options configures a Pipeline. Zero values select the defaults.
type Options struct {
	Column          string // text column, default "comments"
	SentimentColumn string // appended label column, default "sentiment"

	Normalizer ingest.Normalizer
	Tokenizer  *ingest.Tokenizer // default: \w+ with the English stoplist
	Lemmatizer *lemma.Lemmatizer // default: embedded noun vocabulary
	Analyzer   *vader.Analyzer   // default: embedded VADER lexicon
	Threshold  int64             // frequency cut, default freq.DefaultThreshold
	PerToken   bool              // lemmatize word by word instead of the whole string

	Logger *zerolog.Logger
}

// Pipeline runs review tables through every stage from load to export.
// It holds no per-run state and may be reused.
type Pipeline struct {
	column          string
	sentimentColumn string
	normalizer      ingest.Normalizer
	tokenizer       *ingest.Tokenizer
	lemmatizer      *lemma.Lemmatizer
	analyzer        *vader.Analyzer
	threshold       int64
	perToken        bool
	log             zerolog.Logger
}

// Result is the outcome of a run.
type Result struct {
	Input     string
	Output    string
	Records   []Record
	Dist      *freq.Dist
	Threshold int64
	Table     *table.Table // exported table
	StartedAt time.Time
	Elapsed   time.Duration
}

// New creates a pipeline, filling unset options with defaults.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		column:          opts.Column,
		sentimentColumn: opts.SentimentColumn,
		normalizer:      opts.Normalizer,
		tokenizer:       opts.Tokenizer,
		lemmatizer:      opts.Lemmatizer,
		analyzer:        opts.Analyzer,
		threshold:       opts.Threshold,
		perToken:        opts.PerToken,
		log:             zerolog.Nop(),
	}
	if p.column == "" {
		p.column = DefaultColumn
	}
	if p.sentimentColumn == "" {
		p.sentimentColumn = DefaultSentimentColumn
	}
	if p.tokenizer == nil {
		p.tokenizer = ingest.NewEnglishTokenizer()
	}
	if p.lemmatizer == nil {
		p.lemmatizer = lemma.New()
	}
	if p.analyzer == nil {
		p.analyzer = vader.NewDefault()
	}
	if p.threshold == 0 {
		p.threshold = freq.DefaultThreshold
	}
	if opts.Logger != nil {
		p.log = opts.Logger.With().Str("component", "pipeline").Logger()
	}
	return p
}

// Run loads the CSV at in, scores every row and writes the original
// columns plus the sentiment column to out. On error nothing is written.
func (p *Pipeline) Run(ctx context.Context, in, out string) (Result, error) {
	start := time.Now()

	var t *table.Table
	err := p.stage(ctx, "load", func() error {
		var err error
		t, err = table.Load(in)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	res, err := p.Process(ctx, t)
	if err != nil {
		return Result{}, err
	}

	err = p.stage(ctx, "export", func() error {
		return res.Table.Write(out)
	})
	if err != nil {
		return Result{}, err
	}

	res.Input = in
	res.Output = out
	res.StartedAt = start
	res.Elapsed = time.Since(start)

	p.log.Info().
		Str("input", in).
		Str("output", out).
		Int("rows", len(res.Records)).
		Int("vocabulary", len(res.Dist.Above(res.Threshold))).
		Dur("elapsed", res.Elapsed).
		Msg("run complete")

	return res, nil
}

// Process runs every in-memory stage over t and builds the export table.
// t itself is not modified.
func (p *Pipeline) Process(ctx context.Context, t *table.Table) (Result, error) {
	var (
		records []Record
		dist    *freq.Dist
	)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"normalize", func() error {
			comments, err := t.Column(p.column)
			if err != nil {
				return err
			}
			records = newRecords(comments)
			Normalize(records, p.normalizer)
			return nil
		}},
		{"tokenize", func() error {
			Tokenize(records, p.tokenizer)
			return nil
		}},
		{"frequency", func() error {
			dist = BuildDist(records)
			FilterFrequent(records, dist, p.threshold)
			return nil
		}},
		{"lemmatize", func() error {
			Lemmatize(records, p.lemmatizer, p.perToken)
			return nil
		}},
		{"score", func() error {
			Score(records, p.analyzer)
			return nil
		}},
		{"classify", func() error {
			ClassifyAll(records)
			return nil
		}},
	}

	for _, s := range steps {
		if err := p.stage(ctx, s.name, s.fn); err != nil {
			return Result{}, err
		}
	}

	var out *table.Table
	err := p.stage(ctx, "assemble", func() error {
		var err error
		out, err = p.assemble(t, records)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Records:   records,
		Dist:      dist,
		Threshold: p.threshold,
		Table:     out,
	}, nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	p.log.Debug().Str("stage", name).Dur("elapsed", time.Since(start)).Msg("stage complete")
	return nil
}

// assemble copies t, replaces the text column with its normalized form and
// appends the labels. Intermediate fields never reach the table.
func (p *Pipeline) assemble(t *table.Table, records []Record) (*table.Table, error) {
	out, err := t.Drop()
	if err != nil {
		return nil, err
	}

	comments := make([]string, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		comments[i] = r.Comments
		labels[i] = r.Sentiment.String()
	}

	if err := out.SetColumn(p.column, comments); err != nil {
		return nil, err
	}
	if err := out.AppendColumn(p.sentimentColumn, labels); err != nil {
		return nil, err
	}
	return out, nil
}
