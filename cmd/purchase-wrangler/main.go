// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the purchase-wrangler CLI.
// Each pipeline stage is reachable on its own (extract, clean) and composed
// by run; report reads the history that run --db records.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/pdiddy/purchase-wrangler/internal/logging"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	envPrefix = "PURCHASE_WRANGLER"
	envFile   = ".env"

	defaultInput  = "data/raw/customer_purchase_events_dirty.txt"
	defaultOutput = "data/processed/customer_purchase_events_cleaned.csv"
)

// logger is built in PersistentPreRunE once flags and config are resolved.
var logger logging.Logger = logging.Nop()

// rootCmd is the base command for the purchase-wrangler CLI.
var rootCmd = &cobra.Command{
	Use:   "purchase-wrangler",
	Short: "Turn free-form purchase notes into a clean CSV table",
	Long: `purchase-wrangler reads a text file of human-written purchase notes, one per
line, pulls out name, age, city, product, price and purchase date, normalizes
them, and writes a CSV file with one row per input line.

Stages can be run on their own: extract shows the raw matches, clean shows the
normalized records, run writes the CSV. Values that cannot be read are left
empty; they never stop a run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd.Flags(), map[string]string{
			"log.level": "log-level",
			"log.json":  "log-json",
		}); err != nil {
			return err
		}
		lg, err := logging.New(types.LogConfig{
			Level: viper.GetString("log.level"),
			JSON:  viper.GetBool("log.json"),
		}, os.Stderr)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = lg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./purchase-wrangler.yaml or ~/.config/purchase-wrangler/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
}

func initConfig() {
	// Values already in the environment win over the .env file.
	if _, err := os.Stat(envFile); err == nil {
		if err := gotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", envFile, err)
		}
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("purchase-wrangler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "purchase-wrangler"))
		}
	}

	viper.SetDefault("input", defaultInput)
	viper.SetDefault("output", defaultOutput)
	viper.SetDefault("lookup", "")
	viper.SetDefault("database", "")
	viper.SetDefault("workers", 1)
	viper.SetDefault("debounce", "500ms")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// bindFlags binds config keys to the named flags of fs. Flags absent from fs
// are skipped so commands can share one key table.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// stageFlags maps config keys to the flag names used by the stage commands.
var stageFlags = map[string]string{
	"input":    "input",
	"output":   "output",
	"lookup":   "lookup",
	"database": "db",
	"workers":  "workers",
	"debounce": "debounce",
}

// loadConfig resolves flags, environment and config file into a Config.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := bindFlags(cmd.Flags(), stageFlags); err != nil {
		return cfg, err
	}
	err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
