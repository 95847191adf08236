package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/revsent/pkg/revsent/internalerr"
	"github.com/cognicore/revsent/pkg/revsent/store"
)

// Store is an in-memory implementation of store.Store for tests and
// runs that should not touch disk.
type Store struct {
	mu   sync.RWMutex
	ids  *store.IDGenerator
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:  store.NewIDGenerator(),
		runs: make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a copy of run.
func (s *Store) SaveRun(ctx context.Context, run store.Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.ID == "" {
		run.ID = s.ids.New(run.StartedAt)
	}
	if _, ok := s.runs[run.ID]; ok {
		return "", fmt.Errorf("run %s: %w", run.ID, internalerr.ErrDuplicate)
	}

	s.runs[run.ID] = copyRun(run)
	return run.ID, nil
}

// GetRun returns a run without its scores.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	run = copyRun(run)
	run.Scores = nil
	return run, nil
}

// ListRuns returns runs newest first, without scores or vocabulary.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, run := range s.runs {
		run = copyRun(run)
		run.Scores = nil
		run.Vocabulary = nil
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RunScores returns the scores of a run in row order.
func (s *Store) RunScores(ctx context.Context, id string) ([]store.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	scores := append([]store.Score(nil), run.Scores...)
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Row < scores[j].Row })
	return scores, nil
}

func copyRun(r store.Run) store.Run {
	cp := r
	cp.Labels = make(map[string]int64, len(r.Labels))
	for k, v := range r.Labels {
		cp.Labels[k] = v
	}
	cp.Scores = append([]store.Score(nil), r.Scores...)
	cp.Vocabulary = append([]store.VocabEntry(nil), r.Vocabulary...)
	return cp
}
