package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/cognicore/revsent/internal/logging"
	"github.com/cognicore/revsent/pkg/revsent"
	"github.com/cognicore/revsent/pkg/revsent/analytics"
	"github.com/cognicore/revsent/pkg/revsent/config"
	"github.com/cognicore/revsent/pkg/revsent/pipeline"
	"github.com/cognicore/revsent/pkg/revsent/store"
	"github.com/cognicore/revsent/pkg/revsent/store/sqlite"
)

type options struct {
	input     string
	output    string
	config    string
	db        string
	report    bool
	topK      int
	listRuns  int
	showRun   string
	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log := logging.Init(logging.Options{
		Level:     opts.logLevel,
		Format:    opts.logFormat,
		Component: "review-sentiment",
		Writer:    stderr,
	})

	if err := execute(ctx, opts, stdout, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("review-sentiment", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "reviews.csv", "Input CSV with a comments column")
	fs.StringVar(&opts.output, "output", "final_reviews.csv", "Output CSV path")
	fs.StringVar(&opts.config, "config", "", "YAML config file (optional)")
	fs.StringVar(&opts.db, "db", "", "SQLite database for run history (optional)")
	fs.BoolVar(&opts.report, "report", false, "Print a JSON run summary to stdout")
	fs.IntVar(&opts.topK, "topk", analytics.DefaultTopK, "Tokens listed in the report")
	fs.IntVar(&opts.listRuns, "list-runs", 0, "List the N newest stored runs and exit (requires --db)")
	fs.StringVar(&opts.showRun, "show-run", "", "Print a stored run with its scores and exit (requires --db)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "console", "Log format: console or json")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.input == "" || opts.output == "" {
		return opts, errors.New("--input and --output must not be empty")
	}
	if (opts.listRuns > 0 || opts.showRun != "") && opts.db == "" {
		return opts, errors.New("--list-runs and --show-run require --db")
	}
	if opts.logFormat != "console" && opts.logFormat != "json" {
		return opts, fmt.Errorf("unknown --log-format %q", opts.logFormat)
	}
	return opts, nil
}

func execute(ctx context.Context, opts options, stdout io.Writer, log *zerolog.Logger) error {
	var st store.Store
	if opts.db != "" {
		s, err := sqlite.OpenSQLite(ctx, opts.db)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		st = s
		defer st.Close()
	}

	switch {
	case opts.listRuns > 0:
		return listRuns(ctx, st, opts.listRuns, stdout)
	case opts.showRun != "":
		return showRun(ctx, st, opts.showRun, stdout)
	}

	p, err := buildPipeline(opts.config, log)
	if err != nil {
		return err
	}

	engine := revsent.New(revsent.Options{Pipeline: p, Store: st, Logger: log})
	res, err := engine.Run(ctx, opts.input, opts.output)
	if err != nil {
		return err
	}

	if opts.report {
		return analytics.Summarize(res.Result, opts.topK).WriteJSON(stdout)
	}
	return nil
}

func buildPipeline(configPath string, log *zerolog.Logger) (*pipeline.Pipeline, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	loader := config.Loader{Config: cfg}
	components, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}
	return pipeline.New(components.PipelineOptions(log)), nil
}

type runView struct {
	ID         string             `json:"id"`
	Input      string             `json:"input"`
	Output     string             `json:"output"`
	StartedAt  string             `json:"started_at"`
	ElapsedMS  int64              `json:"elapsed_ms"`
	Rows       int                `json:"rows"`
	Threshold  int64              `json:"threshold"`
	Labels     map[string]int64   `json:"labels"`
	Vocabulary []store.VocabEntry `json:"vocabulary,omitempty"`
	Scores     []store.Score      `json:"scores,omitempty"`
}

func viewOf(r store.Run) runView {
	return runView{
		ID:         r.ID,
		Input:      r.Input,
		Output:     r.Output,
		StartedAt:  r.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		ElapsedMS:  r.Elapsed.Milliseconds(),
		Rows:       r.Rows,
		Threshold:  r.Threshold,
		Labels:     r.Labels,
		Vocabulary: r.Vocabulary,
		Scores:     r.Scores,
	}
}

func listRuns(ctx context.Context, st store.Store, limit int, w io.Writer) error {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	views := make([]runView, len(runs))
	for i, r := range runs {
		views[i] = viewOf(r)
	}
	return writeJSON(w, views)
}

func showRun(ctx context.Context, st store.Store, id string, w io.Writer) error {
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return err
	}
	run.Scores, err = st.RunScores(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(w, viewOf(run))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
