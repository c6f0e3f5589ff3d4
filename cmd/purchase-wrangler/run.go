// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/purchase-wrangler/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, normalize and write the cleaned CSV",
	Long: `Run executes the whole pipeline: every line of the input file becomes one
row of the output CSV, in input order, with empty cells where a value could not
be read. The output is replaced only once every row has been written.

With --db the cleaned rows are also recorded in a SQLite database for the
report command. With --watch the pipeline re-runs whenever the input changes.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(pipeline.WithLogger(logger))

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		return p.Watch(ctx, cfg, func(res pipeline.Result, err error) {
			if err != nil {
				logger.Error("run failed", "error", err)
				return
			}
			printResult(os.Stdout, res)
		})
	}

	res, err := p.Run(ctx, cfg)
	if err != nil {
		return err
	}
	printResult(os.Stdout, res)
	return nil
}

func printResult(w io.Writer, res pipeline.Result) {
	fmt.Fprintf(w, "Wrote %d rows to %s\n", res.Rows, res.Output)

	cols := make([]string, 0, len(res.Absent))
	for col, n := range res.Absent {
		if n > 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	for _, col := range cols {
		fmt.Fprintf(w, "  %-14s %d empty\n", col, res.Absent[col])
	}
	if res.RunID != 0 {
		fmt.Fprintf(w, "Recorded as run %d\n", res.RunID)
	}
}

func init() {
	runCmd.Flags().String("input", defaultInput, "raw text file, one purchase note per line")
	runCmd.Flags().String("output", defaultOutput, "CSV file to create or replace")
	runCmd.Flags().String("lookup", "", "YAML, TOML or JSON file extending the built-in lookup tables")
	runCmd.Flags().String("db", "", "SQLite database that records each run")
	runCmd.Flags().Int("workers", 1, "goroutines used to normalize rows")
	runCmd.Flags().Bool("watch", false, "re-run whenever the input file changes")
	runCmd.Flags().Duration("debounce", 500*time.Millisecond, "quiet period before a watch re-run")

	rootCmd.AddCommand(runCmd)
}
