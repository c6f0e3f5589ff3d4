// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/purchase-wrangler/internal/store"
	"github.com/pdiddy/purchase-wrangler/internal/tabular"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize purchases recorded by run --db",
	Long: `Report reads the SQLite database written by run --db and prints purchase
counts and totals per city for one run (the latest by default). Use --runs to
list the recorded runs instead.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Flags(), map[string]string{"database": "db"}); err != nil {
		return err
	}
	dbPath := viper.GetString("database")
	if dbPath == "" {
		return fmt.Errorf("database path required: pass --db or set database in config")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	format, _ := cmd.Flags().GetString("format")
	listRuns, _ := cmd.Flags().GetBool("runs")

	if listRuns {
		runs, err := db.Runs(ctx)
		if err != nil {
			return err
		}
		if format != "table" {
			return encode(os.Stdout, format, runs)
		}
		rows := make([][]string, len(runs))
		for i, r := range runs {
			rows[i] = []string{
				strconv.FormatInt(r.ID, 10),
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				strconv.Itoa(r.Rows),
				r.Input,
				r.Output,
			}
		}
		return tabular.Table(os.Stdout, []string{"run", "started", "rows", "input", "output"}, rows, 0)
	}

	runID, _ := cmd.Flags().GetInt64("run")
	summaries, err := db.CitySummaries(ctx, runID)
	if err != nil {
		return err
	}
	if format != "table" {
		return encode(os.Stdout, format, summaries)
	}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		city := s.City
		if city == "" {
			city = "(unknown)"
		}
		rows[i] = []string{
			city,
			strconv.Itoa(s.Purchases),
			strconv.Itoa(s.Priced),
			strconv.FormatFloat(s.Total, 'f', 2, 64),
		}
	}
	header := []string{"city", "purchases", "priced", "total"}
	if err := tabular.Table(os.Stdout, header, rows, 0); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d cities\n", len(summaries))
	return nil
}

func init() {
	reportCmd.Flags().String("db", "", "SQLite database written by run --db")
	reportCmd.Flags().Int64("run", 0, "run ID to summarize (0 = latest)")
	reportCmd.Flags().Bool("runs", false, "list recorded runs")
	reportCmd.Flags().String("format", "table", "output format: table, yaml or json")

	rootCmd.AddCommand(reportCmd)
}
