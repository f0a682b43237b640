// Package main provides the CLI entrypoint for bibaboba.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bibaboba/internal/config"
	"github.com/verte-zerg/bibaboba/internal/logging"
)

var (
	logLevel  string
	logFormat string

	fileCfg config.FileConfig
	logger  = logging.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "bibaboba",
		Short:             "Find the words one chat participant uses and the other does not",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupRoot,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	built, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: logLevel, Format: logFormat})
	if err != nil {
		return err
	}
	logger = built
	slog.SetDefault(logger)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
