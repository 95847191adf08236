package lemma

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/nouns.txt
var embeddedNouns string

//go:embed data/noun.exc
var embeddedExceptions string

// substitution is a suffix detachment rule: a form ending in suffix may be
// an inflection of form[:len-len(suffix)] + replacement.
type substitution struct {
	suffix      string
	replacement string
}

// nounRules are the WordNet noun detachment rules, applied in order.
var nounRules = []substitution{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Lemmatizer reduces noun forms to their dictionary base form the way
// WordNet's morphy does: irregular exceptions first, then suffix rules,
// accepting only candidates present in the vocabulary.
//
// The input is treated as a single form. A string with embedded spaces is
// looked up whole, so it is returned unchanged unless the vocabulary
// contains that exact phrase.
type Lemmatizer struct {
	// vocabulary of known base forms
	vocabulary map[string]struct{}

	// irregular inflection -> base forms
	// Example: "children" -> ["child"]
	exceptions map[string][]string
}

// New creates a lemmatizer from the embedded vocabulary and exception list.
func New() *Lemmatizer {
	l := Empty()
	l.addVocabularyText(embeddedNouns)
	l.addExceptionText(embeddedExceptions)
	return l
}

// NewWordNet creates a lemmatizer from a WordNet database directory (the
// "dict" directory of a WordNet 3.x release). Only index.noun and noun.exc
// are read; the embedded data is not used.
func NewWordNet(dir string) (*Lemmatizer, error) {
	l := Empty()
	if err := l.LoadWordNet(dir); err != nil {
		return nil, err
	}
	return l, nil
}

// Empty creates a lemmatizer with no vocabulary: every form maps to itself.
func Empty() *Lemmatizer {
	return &Lemmatizer{
		vocabulary: make(map[string]struct{}),
		exceptions: make(map[string][]string),
	}
}

// AddWord registers a base form.
func (l *Lemmatizer) AddWord(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		l.vocabulary[word] = struct{}{}
	}
}

// AddException registers an irregular inflection and its base forms.
func (l *Lemmatizer) AddException(form string, bases ...string) {
	form = strings.ToLower(strings.TrimSpace(form))
	if form == "" {
		return
	}
	for _, b := range bases {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		l.exceptions[form] = append(l.exceptions[form], b)
	}
}

// Known reports whether word is a base form in the vocabulary.
func (l *Lemmatizer) Known(word string) bool {
	_, ok := l.vocabulary[word]
	return ok
}

// VocabularySize returns the number of known base forms.
func (l *Lemmatizer) VocabularySize() int {
	return len(l.vocabulary)
}

// Lemmatize returns the shortest base form found for form, or form itself
// when no candidate is in the vocabulary.
func (l *Lemmatizer) Lemmatize(form string) string {
	lemmas := l.morphy(form)
	if len(lemmas) == 0 {
		return form
	}
	best := lemmas[0]
	for _, c := range lemmas[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}

// LemmatizeTokens lemmatizes each whitespace-separated word of text and
// rejoins them with single spaces.
func (l *Lemmatizer) LemmatizeTokens(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = l.Lemmatize(w)
	}
	return strings.Join(words, " ")
}

func (l *Lemmatizer) morphy(form string) []string {
	if bases, ok := l.exceptions[form]; ok {
		return l.filter(append([]string{form}, bases...))
	}

	forms := applyRules([]string{form})
	if results := l.filter(append([]string{form}, forms...)); len(results) > 0 {
		return results
	}

	for len(forms) > 0 {
		forms = applyRules(forms)
		if results := l.filter(forms); len(results) > 0 {
			return results
		}
	}
	return nil
}

func applyRules(forms []string) []string {
	var out []string
	for _, f := range forms {
		for _, r := range nounRules {
			if strings.HasSuffix(f, r.suffix) {
				out = append(out, f[:len(f)-len(r.suffix)]+r.replacement)
			}
		}
	}
	return out
}

// filter keeps the known forms, deduplicated, in input order.
func (l *Lemmatizer) filter(forms []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if !l.Known(f) {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// addVocabularyText loads one base form per line; '#' starts a comment.
func (l *Lemmatizer) addVocabularyText(text string) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.AddWord(line)
	}
}

// addExceptionText loads WordNet exception lines: "inflected base [base...]".
func (l *Lemmatizer) addExceptionText(text string) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		l.AddException(fields[0], fields[1:]...)
		// exception targets are base forms by definition
		for _, b := range fields[1:] {
			l.AddWord(b)
		}
	}
}

// LoadWordNet adds the noun lemmas of dir/index.noun and the irregular
// forms of dir/noun.exc. Multi-word lemmas keep WordNet's underscores.
func (l *Lemmatizer) LoadWordNet(dir string) error {
	index, err := os.Open(filepath.Join(dir, "index.noun"))
	if err != nil {
		return err
	}
	defer index.Close()

	if err := l.readIndex(index); err != nil {
		return fmt.Errorf("index.noun: %w", err)
	}

	exc, err := os.ReadFile(filepath.Join(dir, "noun.exc"))
	if err != nil {
		return err
	}
	l.addExceptionText(string(exc))
	return nil
}

// readIndex reads the lemma column of a WordNet index file. Lines that
// start with a space belong to the license header.
func (l *Lemmatizer) readIndex(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == ' ' {
			continue
		}
		lemma, _, _ := strings.Cut(line, " ")
		l.AddWord(lemma)
	}
	return sc.Err()
}

// LoadFromYAML extends the lemmatizer with entries from a YAML file.
//
// Expected format:
//
//	vocabulary: [apartment, balcony, host]
//	exceptions:
//	  children: [child]
//	  geese: [goose]
func (l *Lemmatizer) LoadFromYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var config struct {
		Vocabulary []string            `yaml:"vocabulary"`
		Exceptions map[string][]string `yaml:"exceptions"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return err
	}

	for _, w := range config.Vocabulary {
		l.AddWord(w)
	}
	for form, bases := range config.Exceptions {
		l.AddException(form, bases...)
		for _, b := range bases {
			l.AddWord(b)
		}
	}
	return nil
}
