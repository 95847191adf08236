package freq

import "sort"

// DefaultThreshold is the count a token must exceed to stay in the vocabulary.
const DefaultThreshold = 2

// Dist is a corpus-wide frequency distribution: occurrences of every
// distinct token. It is immutable once built and safe to share.
type Dist struct {
	n      int64            // total number of token occurrences
	counts map[string]int64 // occurrences per token
}

// Entry is a token with its count
type Entry struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// Build counts every token in tokens.
func Build(tokens []string) *Dist {
	d := &Dist{counts: make(map[string]int64)}
	for _, t := range tokens {
		d.counts[t]++
		d.n++
	}
	return d
}

// Count returns the occurrences of token, zero if unseen
func (d *Dist) Count(token string) int64 {
	return d.counts[token]
}

// N returns the total number of token occurrences
func (d *Dist) N() int64 {
	return d.n
}

// B returns the number of distinct tokens
func (d *Dist) B() int {
	return len(d.counts)
}

// Keep returns the tokens whose count is strictly greater than threshold,
// preserving order and duplicates. Never returns nil.
func (d *Dist) Keep(tokens []string, threshold int64) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if d.counts[t] > threshold {
			out = append(out, t)
		}
	}
	return out
}

// Above returns every distinct token with count strictly greater than
// threshold, ordered like MostCommon.
func (d *Dist) Above(threshold int64) []Entry {
	out := []Entry{}
	for t, c := range d.counts {
		if c > threshold {
			out = append(out, Entry{Token: t, Count: c})
		}
	}
	sortEntries(out)
	return out
}

// MostCommon returns the k most frequent tokens (count desc, token asc).
// k <= 0 returns every token.
func (d *Dist) MostCommon(k int) []Entry {
	out := make([]Entry, 0, len(d.counts))
	for t, c := range d.counts {
		out = append(out, Entry{Token: t, Count: c})
	}
	sortEntries(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})
}
