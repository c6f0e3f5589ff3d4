// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/purchase-wrangler/internal/pipeline"
	"github.com/pdiddy/purchase-wrangler/internal/tabular"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Show the normalized records without writing a file",
	Long: `Clean runs the extract and normalize stages and prints the result: an
aligned table by default, or CSV, YAML or JSON. Nothing is written to disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		recs, err := pipeline.New(pipeline.WithLogger(logger)).Clean(context.Background(), cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table", "":
			width, _ := cmd.Flags().GetInt("width")
			return tabular.Preview(os.Stdout, recs, width)
		case "csv":
			return tabular.Encode(os.Stdout, recs)
		default:
			return encode(os.Stdout, format, recs)
		}
	},
}

func init() {
	cleanCmd.Flags().String("input", defaultInput, "raw text file, one purchase note per line")
	cleanCmd.Flags().String("lookup", "", "YAML, TOML or JSON file extending the built-in lookup tables")
	cleanCmd.Flags().Int("workers", 1, "goroutines used to normalize rows")
	cleanCmd.Flags().String("format", "table", "output format: table, csv, yaml or json")
	cleanCmd.Flags().Int("width", 24, "maximum table cell width (0 = unlimited)")

	rootCmd.AddCommand(cleanCmd)
}
