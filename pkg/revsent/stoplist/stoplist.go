package stoplist

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager holds a stopword set and filters token sequences against it.
// Membership is exact: no case folding or stemming happens on lookup.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist manager from the given words
func NewManager(words []string) *Manager {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		stops[w] = struct{}{}
	}
	return &Manager{stops: stops}
}

// NewEnglish creates a manager seeded with the English stopword list
func NewEnglish() *Manager {
	return NewManager(English())
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, token)
}

// Len returns the number of stopwords
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Filter returns the tokens that are not stopwords, preserving order.
// The result is never nil so an all-stopword row still yields an empty sequence.
func (m *Manager) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !m.IsStop(t) {
			out = append(out, t)
		}
	}
	return out
}

// File is the YAML stoplist format:
//
//	terms:
//	  - the
//	  - a
type File struct {
	Terms []string `yaml:"terms"`
}

// LoadFile reads a YAML stoplist. Terms are trimmed; blanks are skipped.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	terms := make([]string, 0, len(f.Terms))
	for _, t := range f.Terms {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms, nil
}
