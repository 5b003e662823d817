/*
Package main is the batch entry point for the search analytics pipeline.

Usage:

	pipeline [command]

Available Commands:

	ingest     Ingest an exporter batch file and recompute its dates
	recompute  Recompute derived tables for a date range
	rebuild    Recompute derived tables from all raw history
	rollup     Roll up and purge journeys past the retention horizon
	init       Create the database schema
*/
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/internal/config"
	"github.com/dallmi/SearchAnalytics/internal/logger"
	"github.com/dallmi/SearchAnalytics/internal/pipeline"
	"github.com/dallmi/SearchAnalytics/internal/repository/clickhouse"
	"github.com/dallmi/SearchAnalytics/internal/rollup"
)

// app carries the wired dependencies shared by every subcommand.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	loc  *time.Location
	repo *clickhouse.Repository
}

// setup loads config, builds the logger and connects to ClickHouse. Every
// subcommand runs through it so they all behave the same way on a broken
// environment.
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ClickHouse client: %w", err)
	}

	return &app{
		cfg:  cfg,
		log:  log,
		loc:  loc,
		repo: clickhouse.NewRepository(client, loc, log),
	}, nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.log.Error("Failed to close ClickHouse client", zap.Error(err))
	}
	_ = a.log.Sync()
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest an exporter batch file (CSV or Excel) and recompute its dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.repo.InitSchema(ctx); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			runner := pipeline.NewRunner(a.repo, a.loc, a.log).
				WithBatchSize(a.cfg.Pipeline.IngestBatchSize)
			return runner.Ingest(ctx, args[0])
		},
	}
}

func newRecomputeCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute derived tables for an inclusive date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			runner := pipeline.NewRunner(a.repo, a.loc, a.log)
			return runner.Recompute(ctx, from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD (inclusive)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute derived tables from all stored raw events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			runner := pipeline.NewRunner(a.repo, a.loc, a.log)
			return runner.Rebuild(ctx)
		},
	}
}

func newRollupCmd() *cobra.Command {
	var cutoff string

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Roll up journeys past the retention horizon into permanent daily aggregates, then purge them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if cutoff == "" {
				days := a.cfg.Retention.JourneyRetentionDays
				cutoff = time.Now().In(a.loc).AddDate(0, 0, -days).Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", cutoff); err != nil {
				return fmt.Errorf("invalid cutoff date %q: expected YYYY-MM-DD", cutoff)
			}

			return rollup.New(a.repo, a.log).Run(ctx, cutoff)
		},
	}

	cmd.Flags().StringVar(&cutoff, "cutoff", "", "purge journeys strictly before this date (default: today minus the configured retention window)")

	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.repo.InitSchema(ctx); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			a.log.Info("Database schema initialized")
			return nil
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Batch processor for search interaction telemetry",
		Long: `pipeline ingests raw search telemetry exports, derives enriched
events, session journeys and daily/term aggregates, and maintains the
retention rollup of expired journey detail.`,
	}

	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newRecomputeCmd())
	rootCmd.AddCommand(newRebuildCmd())
	rootCmd.AddCommand(newRollupCmd())
	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
