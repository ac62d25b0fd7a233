// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metaqa CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metaqa/internal/assess"
	"github.com/pdiddy/metaqa/internal/indicators"
	"github.com/pdiddy/metaqa/internal/logging"
	"github.com/pdiddy/metaqa/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the metaqa CLI.
var rootCmd = &cobra.Command{
	Use:   "metaqa",
	Short: "Assess the quality of extracted file metadata",
	Long: `metaqa scores a metadata record produced by upstream extractors. It
reports completeness, validity and consistency, detects failure patterns,
and lists ranked recommendations.

Records are JSON documents. Each subcommand reads one or more records from
files ("-" reads stdin) and writes JSON or YAML to stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logging.Init(level, viper.GetString("log.format"), os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metaqa.yaml or ~/.config/metaqa/metaqa.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("indicators", "", "indicator tables YAML file (default: built-in tables)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("indicators", rootCmd.PersistentFlags().Lookup("indicators"))

	viper.SetDefault("history.db", filepath.Join(".metaqa", "history.db"))
	viper.SetDefault("batch.workers", 4)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("metaqa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "metaqa"))
		}
	}

	viper.SetEnvPrefix("METAQA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// loadConfig decodes the merged flag, environment and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Batch.Workers <= 0 {
		cfg.Batch.Workers = 4
	}
	return cfg, nil
}

// newEngine loads the configured indicator tables and returns an engine
// over them.
func newEngine(cfg types.Config) (*assess.Engine, error) {
	var (
		tables *indicators.Tables
		err    error
	)
	if cfg.Indicators != "" {
		tables, err = indicators.Load(cfg.Indicators)
	} else {
		tables, err = indicators.Default()
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("indicator tables loaded", "version", tables.Version(), "path", cfg.Indicators)
	return assess.New(tables), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
