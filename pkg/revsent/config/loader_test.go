package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderDefaults(t *testing.T) {
	loader := Loader{Config: Default()}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Default loader should succeed: %v", err)
	}

	if comp.Tokenizer == nil || comp.Lemmatizer == nil || comp.Analyzer == nil {
		t.Fatal("Loader should build every component")
	}
	if !comp.Tokenizer.Stoplist().IsStop("the") {
		t.Error("Default stoplist should be English")
	}
	if comp.Threshold != 2 {
		t.Errorf("Expected threshold 2, got %d", comp.Threshold)
	}

	opts := comp.PipelineOptions(nil)
	if opts.Column != "comments" || opts.Tokenizer != comp.Tokenizer || opts.Analyzer != comp.Analyzer {
		t.Errorf("PipelineOptions did not carry components: %+v", opts)
	}
}

func TestLoaderValidFiles(t *testing.T) {
	tmpDir := t.TempDir()

	stopPath := filepath.Join(tmpDir, "stoplist.yaml")
	os.WriteFile(stopPath, []byte("terms:\n  - wifi\n  - host\n"), 0644)

	lemmaPath := filepath.Join(tmpDir, "lemma.yaml")
	os.WriteFile(lemmaPath, []byte("vocabulary: [gazebo]\n"), 0644)

	lexPath := filepath.Join(tmpDir, "lexicon.txt")
	os.WriteFile(lexPath, []byte("cozy\t2.0\n"), 0644)

	cfg := Default()
	cfg.Stoplist.Path = stopPath
	cfg.Stoplist.Extra = []string{"stay"}
	cfg.Lemma.Path = lemmaPath
	cfg.Vader.Lexicon = lexPath
	cfg.Normalize.StripHTML = true

	comp, err := (&Loader{Config: cfg}).Load()
	if err != nil {
		t.Fatalf("Loader failed: %v", err)
	}

	stops := comp.Tokenizer.Stoplist()
	if stops.IsStop("the") {
		t.Error("Stoplist file should replace the English list")
	}
	for _, w := range []string{"wifi", "host", "stay"} {
		if !stops.IsStop(w) {
			t.Errorf("Expected %q to be a stopword", w)
		}
	}
	if got := comp.Lemmatizer.Lemmatize("gazebos"); got != "gazebo" {
		t.Errorf("Lemma data not loaded, got %q", got)
	}
	if v, ok := comp.Analyzer.Valence("cozy"); !ok || v != 2.0 {
		t.Errorf("Lexicon not loaded: %v %v", v, ok)
	}
	if !comp.Normalizer.StripHTML {
		t.Error("StripHTML should be carried into the normalizer")
	}
}

func TestLoaderWordNet(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "index.noun"), []byte("treat n 3 2 @ ~ 3 1 07613480 07802246 07612996\n"), 0644)
	os.WriteFile(filepath.Join(dir, "noun.exc"), []byte("mice mouse\n"), 0644)

	cfg := Default()
	cfg.Lemma.WordNetDir = dir
	comp, err := (&Loader{Config: cfg}).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := comp.Lemmatizer.Lemmatize("treats"); got != "treat" {
		t.Errorf("WordNet lemma not used, got %q", got)
	}
	if comp.Lemmatizer.VocabularySize() != 2 {
		t.Errorf("WordNet data should replace the embedded vocabulary, got %d lemmas", comp.Lemmatizer.VocabularySize())
	}
}

func TestLoaderNonExistentFiles(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"stoplist", func(c *Config) { c.Stoplist.Path = "/nonexistent/stoplist.yaml" }},
		{"lemma", func(c *Config) { c.Lemma.Path = "/nonexistent/lemma.yaml" }},
		{"wordnet", func(c *Config) { c.Lemma.WordNetDir = "/nonexistent/dict" }},
		{"lexicon", func(c *Config) { c.Vader.Lexicon = "/nonexistent/lexicon.txt" }},
		{"emoji lexicon", func(c *Config) { c.Vader.EmojiLexicon = "/nonexistent/emoji.txt" }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.modify(&cfg)
		if _, err := (&Loader{Config: cfg}).Load(); err == nil {
			t.Errorf("Should error on nonexistent %s", tt.name)
		}
	}
}

func TestLoaderInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Freq.Threshold = 0
	if _, err := (&Loader{Config: cfg}).Load(); err == nil {
		t.Error("Should reject invalid config")
	}
}
