// Command extract runs the task extraction pipeline over transcript files
// without a server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/okian/meetmind/internal/adapters/roster"
	"github.com/okian/meetmind/internal/domain/model"
	"github.com/okian/meetmind/internal/domain/pipeline"
	"github.com/okian/meetmind/pkg/logger"
)

type options struct {
	teamFile    string
	reference   string
	timezone    string
	concurrency int
	pretty      bool
	logLevel    string
}

// fileResult is one output document.
type fileResult struct {
	File   string          `json:"file"`
	Result pipeline.Result `json:"result"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "extract [transcript...]",
		Short: "Extract prioritised, assigned tasks from meeting transcripts",
		Long: `Reads preprocessed transcript sentences (YAML or JSON) and prints one JSON
document per file, in argument order. Each file is processed independently.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.teamFile, "team", "t", "", "team roster file (YAML or JSON)")
	f.StringVarP(&opts.reference, "reference", "r", "", "reference time, RFC3339 (default now)")
	f.StringVar(&opts.timezone, "timezone", "UTC", "IANA zone for the default reference time")
	f.IntVarP(&opts.concurrency, "concurrency", "c", runtime.NumCPU(), "files processed in parallel")
	f.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func runExtract(ctx context.Context, opts options, files []string, stdout, stderr io.Writer) error {
	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return err
	}
	if err := logger.SetLevelString(opts.logLevel); err != nil {
		return err
	}
	log := logger.Named("extract")

	ref, err := referenceTime(opts)
	if err != nil {
		return err
	}

	team := model.Team{}
	if opts.teamFile != "" {
		if team, err = roster.LoadFile(opts.teamFile); err != nil {
			return err
		}
	}

	p := pipeline.New(pipeline.WithReference(ref), pipeline.WithLogger(log))
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.concurrency > 0 {
		g.SetLimit(opts.concurrency)
	}
	for i, path := range files {
		g.Go(func() error {
			sentences, err := loadTranscript(path)
			if err != nil {
				return err
			}
			res, err := p.Run(gctx, sentences, team)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Debug(gctx, "file processed", logger.String("file", path), logger.Int("tasks", len(res.Tasks)))
			results[i] = fileResult{File: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func referenceTime(opts options) (time.Time, error) {
	if opts.reference != "" {
		t, err := time.Parse(time.RFC3339, opts.reference)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --reference: %w", err)
		}
		return t, nil
	}
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --timezone: %w", err)
	}
	return time.Now().In(loc), nil
}
