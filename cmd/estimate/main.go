package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/estimator/internal/config"
	"github.com/JaimeStill/estimator/internal/infrastructure"
)

var rootFlags struct {
	output  string
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Quote print orders from the command line",
	Long:  "estimate runs the extraction, validation and pricing pipeline against\norder text without a database, and exercises the workflow webhook.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.output, "output", "o", formatJSON, "output format: json or yaml")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log pipeline events to stderr")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(candidatesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if rootFlags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func loadServices(cmd *cobra.Command) (*infrastructure.Services, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cmd)
	return infrastructure.NewServices(cfg, logger), logger, nil
}
