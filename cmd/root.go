// Package cmd implements the CLI commands for interviewdigest using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/config"
)

// Persistent flag variables.
var (
	flagConfig    string
	flagLogLevel  string
	flagOutputDir string
)

// Loaded by the root pre-run hook.
var (
	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "interviewdigest",
	Short: "Turn interview write-ups into structured digests",
	Long: `interviewdigest scrapes interview-experience write-ups, extracts rounds and
questions into structured records, and builds documents, PDF reports and a
retrieval index you can chat with.

Usage:
  interviewdigest scrape --company Amazon --role "SDE-1"
  interviewdigest gfg --company Amazon
  interviewdigest digest amazon_sde_1.json --format md
  interviewdigest report amazon_sde_1.json --xlsx
  interviewdigest index amazon_sde_1.json
  interviewdigest ask`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

// setup loads the configuration, applies persistent flags and builds the
// run logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	if flagOutputDir != "" {
		loaded.OutputDir = flagOutputDir
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           cfg.Level(),
	}).With("run", uuid.NewString()[:8])
	log.SetDefault(logger)
	logger.Debug("config loaded", "command", cmd.Name(), "file", flagConfig)
	return nil
}

// Execute runs the root command with a context cancelled on interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
