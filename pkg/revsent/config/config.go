package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/revsent/pkg/revsent/freq"
	"github.com/cognicore/revsent/pkg/revsent/internalerr"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
)

// Config is the YAML run configuration
type Config struct {
	Column          string    `yaml:"column"`
	SentimentColumn string    `yaml:"sentiment_column"`
	Normalize       Normalize `yaml:"normalize"`
	Stoplist        Stoplist  `yaml:"stoplist"`
	Freq            Freq      `yaml:"freq"`
	Lemma           Lemma     `yaml:"lemma"`
	Vader           Vader     `yaml:"vader"`
}

// Normalize controls text clean-up before tokenization
type Normalize struct {
	StripHTML bool `yaml:"strip_html"`
}

// Stoplist selects the stopword list. Path replaces the English base list
// with a `terms:` file; Extra words are added on top.
type Stoplist struct {
	Path  string   `yaml:"path"`
	Extra []string `yaml:"extra"`
}

// Freq holds the frequency filter settings
type Freq struct {
	Threshold int64 `yaml:"threshold"`
}

// Lemma selects the lemmatizer data. WordNetDir points at a WordNet "dict"
// directory that replaces the embedded vocabulary; Path adds YAML entries
// on top of either.
type Lemma struct {
	WordNetDir string `yaml:"wordnet_dir"`
	Path       string `yaml:"path"`
	PerToken   bool   `yaml:"per_token"`
}

// Vader selects lexicon files; empty paths use the embedded lexicons
type Vader struct {
	Lexicon      string `yaml:"lexicon"`
	EmojiLexicon string `yaml:"emoji_lexicon"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Column:          pipeline.DefaultColumn,
		SentimentColumn: pipeline.DefaultSentimentColumn,
		Freq:            Freq{Threshold: freq.DefaultThreshold},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	if strings.TrimSpace(c.Column) == "" {
		return fmt.Errorf("column must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.SentimentColumn) == "" {
		return fmt.Errorf("sentiment_column must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	if c.Column == c.SentimentColumn {
		return fmt.Errorf("column and sentiment_column are both %q: %w", c.Column, internalerr.ErrInvalidConfig)
	}
	if c.Freq.Threshold < 1 {
		return fmt.Errorf("freq.threshold must be at least 1, got %d: %w", c.Freq.Threshold, internalerr.ErrInvalidConfig)
	}
	return nil
}
