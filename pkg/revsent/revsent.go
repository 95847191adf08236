package revsent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cognicore/revsent/pkg/revsent/pipeline"
	"github.com/cognicore/revsent/pkg/revsent/store"
)

// Engine runs the review sentiment pipeline and optionally records runs.
type Engine struct {
	pipeline *pipeline.Pipeline
	store    store.Store
	log      zerolog.Logger
}

// Options configures an Engine. A nil Pipeline uses the defaults; a nil
// Store records nothing.
type Options struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Logger   *zerolog.Logger
}

// RunResult is a pipeline result plus the stored run ID, if any.
type RunResult struct {
	pipeline.Result
	RunID string
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		pipeline: opts.Pipeline,
		store:    opts.Store,
		log:      zerolog.Nop(),
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	if e.pipeline == nil {
		e.pipeline = pipeline.New(pipeline.Options{Logger: opts.Logger})
	}
	return e
}

// Close releases the store, if any
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Run scores the reviews at in and writes the labelled table to out.
// With a store configured the run is saved after the output is written.
func (e *Engine) Run(ctx context.Context, in, out string) (RunResult, error) {
	res, err := e.pipeline.Run(ctx, in, out)
	if err != nil {
		return RunResult{}, err
	}

	rr := RunResult{Result: res}
	if e.store == nil {
		return rr, nil
	}

	id, err := e.store.SaveRun(ctx, store.FromResult(res))
	if err != nil {
		return rr, fmt.Errorf("save run: %w", err)
	}
	rr.RunID = id
	e.log.Info().Str("run_id", id).Msg("run saved")
	return rr, nil
}

// Run scores the reviews at in with the default components and writes the
// original columns plus a sentiment column to out.
func Run(ctx context.Context, in, out string) (pipeline.Result, error) {
	return pipeline.New(pipeline.Options{}).Run(ctx, in, out)
}
