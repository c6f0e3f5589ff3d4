// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/purchase-wrangler/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Show the raw fields matched on each input line",
	Long: `Extract runs only the first stage and prints one record per input line with
the text each field pattern matched, before any cleaning. A null field means the
pattern found nothing on that line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		raws, err := pipeline.New(pipeline.WithLogger(logger)).Extract(context.Background(), cfg)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return encode(os.Stdout, format, raws)
	},
}

func init() {
	extractCmd.Flags().String("input", defaultInput, "raw text file, one purchase note per line")
	extractCmd.Flags().String("lookup", "", "YAML, TOML or JSON file extending the built-in lookup tables")
	extractCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(extractCmd)
}
