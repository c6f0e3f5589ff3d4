// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes the extract, normalize and write stages into a
// single run: read the whole input, transform it in memory, then write the
// whole output. A run either writes the complete CSV or leaves no trace.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/pdiddy/purchase-wrangler/internal/extract"
	"github.com/pdiddy/purchase-wrangler/internal/logging"
	"github.com/pdiddy/purchase-wrangler/internal/lookup"
	"github.com/pdiddy/purchase-wrangler/internal/normalize"
	"github.com/pdiddy/purchase-wrangler/internal/store"
	"github.com/pdiddy/purchase-wrangler/internal/tabular"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// ErrNoInput is returned when the input file does not exist.
var ErrNoInput = errors.New("input file not found")

// Result summarizes a completed run.
type Result struct {
	Input   string             `json:"input" yaml:"input"`
	Output  string             `json:"output" yaml:"output"`
	Rows    int                `json:"rows" yaml:"rows"`
	Absent  types.AbsentCounts `json:"absent" yaml:"absent"`
	RunID   int64              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Elapsed time.Duration      `json:"elapsed" yaml:"elapsed"`

	Records []types.CleanRecord `json:"-" yaml:"-"`
}

// Pipeline runs the stages against a file system and reports through a
// logger. It holds no state between runs.
type Pipeline struct {
	fs  afero.Fs
	log logging.Logger
	now func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFs sets the file system used for input, output and lookup files
// (default: the OS file system). The SQLite database always lives on the OS
// file system.
func WithFs(fs afero.Fs) Option {
	return func(p *Pipeline) { p.fs = fs }
}

// WithLogger sets the logger (default: discard).
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New returns a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		fs:  afero.NewOsFs(),
		log: logging.Nop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Extract runs only the extract stage over cfg.Input.
func (p *Pipeline) Extract(ctx context.Context, cfg types.Config) ([]types.RawRecord, error) {
	raws, _, err := p.extract(ctx, cfg)
	return raws, err
}

// Clean runs the extract and normalize stages over cfg.Input.
func (p *Pipeline) Clean(ctx context.Context, cfg types.Config) ([]types.CleanRecord, error) {
	raws, tables, err := p.extract(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.normalize(ctx, cfg, tables, raws)
}

// Run executes all stages and writes cfg.Output. When cfg.Database is set,
// the cleaned rows are recorded there before the CSV replaces cfg.Output; if
// recording fails the output is left untouched.
func (p *Pipeline) Run(ctx context.Context, cfg types.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid configuration: %w", err)
	}
	start := p.now()

	recs, err := p.Clean(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	staged, err := tabular.StageCSV(p.fs, cfg.Output, recs)
	if err != nil {
		return Result{}, fmt.Errorf("writing output: %w", err)
	}

	res := Result{
		Input:   cfg.Input,
		Output:  cfg.Output,
		Rows:    len(recs),
		Absent:  types.CountAbsent(recs),
		Records: recs,
	}

	if cfg.Database != "" {
		id, err := p.record(ctx, cfg, start, recs)
		if err != nil {
			staged.Discard()
			return Result{}, err
		}
		res.RunID = id
	}

	if err := staged.Commit(); err != nil {
		return Result{}, fmt.Errorf("writing output: %w", err)
	}
	p.log.Info("wrote output", "path", cfg.Output, "rows", len(recs))

	res.Elapsed = p.now().Sub(start)
	return res, nil
}

func (p *Pipeline) extract(ctx context.Context, cfg types.Config) ([]types.RawRecord, *lookup.Tables, error) {
	if cfg.Input == "" {
		return nil, nil, types.ErrMissingInput
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	tables, err := lookup.Load(p.fs, cfg.Lookup)
	if err != nil {
		return nil, nil, err
	}

	f, err := p.fs.Open(cfg.Input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoInput, cfg.Input)
		}
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	raws, err := extract.New(tables).Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input %s: %w", cfg.Input, err)
	}
	p.log.Info("extracted", "path", cfg.Input, "rows", len(raws))
	return raws, tables, nil
}

func (p *Pipeline) normalize(ctx context.Context, cfg types.Config, tables *lookup.Tables, raws []types.RawRecord) ([]types.CleanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workers := max(cfg.Workers, 1)
	recs := normalize.New(tables, normalize.WithWorkers(workers)).All(raws)

	for col, n := range types.CountAbsent(recs) {
		if n > 0 {
			p.log.Debug("absent values", "column", col, "rows", n)
		}
	}
	p.log.Info("normalized", "rows", len(recs), "workers", workers)
	return recs, nil
}

func (p *Pipeline) record(ctx context.Context, cfg types.Config, start time.Time, recs []types.CleanRecord) (int64, error) {
	db, err := store.Open(cfg.Database)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, store.Run{
		Input:     cfg.Input,
		Output:    cfg.Output,
		StartedAt: start,
	}, recs)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	p.log.Info("recorded run", "database", cfg.Database, "run_id", id)
	return id, nil
}
