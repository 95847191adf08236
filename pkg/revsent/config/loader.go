package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cognicore/revsent/pkg/revsent/ingest"
	"github.com/cognicore/revsent/pkg/revsent/lemma"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
	"github.com/cognicore/revsent/pkg/revsent/stoplist"
	"github.com/cognicore/revsent/pkg/revsent/vader"
)

// Loader constructs pipeline components from a Config
type Loader struct {
	Config Config
}

// Components holds all loaded configuration components
type Components struct {
	Normalizer ingest.Normalizer
	Tokenizer  *ingest.Tokenizer
	Lemmatizer *lemma.Lemmatizer
	Analyzer   *vader.Analyzer
	Threshold  int64
	PerToken   bool

	Column          string
	SentimentColumn string
}

// Load reads every referenced file and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{
		Normalizer:      ingest.Normalizer{StripHTML: cfg.Normalize.StripHTML},
		Threshold:       cfg.Freq.Threshold,
		PerToken:        cfg.Lemma.PerToken,
		Column:          cfg.Column,
		SentimentColumn: cfg.SentimentColumn,
	}

	// Load stoplist
	stops := stoplist.NewEnglish()
	if cfg.Stoplist.Path != "" {
		terms, err := stoplist.LoadFile(cfg.Stoplist.Path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stoplist.NewManager(terms)
	}
	for _, w := range cfg.Stoplist.Extra {
		stops.Add(w)
	}
	comp.Tokenizer = ingest.NewTokenizer(stops)

	// Load lemmatizer data
	if cfg.Lemma.WordNetDir != "" {
		lem, err := lemma.NewWordNet(cfg.Lemma.WordNetDir)
		if err != nil {
			return nil, fmt.Errorf("load wordnet: %w", err)
		}
		comp.Lemmatizer = lem
	} else {
		comp.Lemmatizer = lemma.New()
	}
	if cfg.Lemma.Path != "" {
		if err := comp.Lemmatizer.LoadFromYAML(cfg.Lemma.Path); err != nil {
			return nil, fmt.Errorf("load lemma data: %w", err)
		}
	}

	// Load sentiment lexicons
	analyzer, err := vader.New(vader.Options{
		LexiconPath:      cfg.Vader.Lexicon,
		EmojiLexiconPath: cfg.Vader.EmojiLexicon,
	})
	if err != nil {
		return nil, err
	}
	comp.Analyzer = analyzer

	return comp, nil
}

// PipelineOptions converts the components into pipeline options
func (c *Components) PipelineOptions(logger *zerolog.Logger) pipeline.Options {
	return pipeline.Options{
		Column:          c.Column,
		SentimentColumn: c.SentimentColumn,
		Normalizer:      c.Normalizer,
		Tokenizer:       c.Tokenizer,
		Lemmatizer:      c.Lemmatizer,
		Analyzer:        c.Analyzer,
		Threshold:       c.Threshold,
		PerToken:        c.PerToken,
		Logger:          logger,
	}
}
