package main

import (
	"context"
	"database/sql"
	"fmt"
	"golf-journey/internal/analytics"
	"golf-journey/internal/config"
	fxmodules "golf-journey/internal/fx"
	"golf-journey/internal/logger"
	"golf-journey/internal/repository"
	"golf-journey/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	dbPath      string
	sourceFiles []string
	logLevel    string
	format      string
)

var rootCmd = &cobra.Command{
	Use:   "golfstats",
	Short: "Per-hole golf statistics from Garmin scorecards",
	Long: `golfstats imports Garmin Connect scorecards and reports per-hole putting,
scoring, fairway accuracy and greens-in-regulation statistics for a course.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH or golf.db)")
	rootCmd.PersistentFlags().StringSliceVar(&sourceFiles, "source", nil, "Compute from scorecard JSON files in memory instead of the database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")
}

// app is the set of services a command runs against.
type app struct {
	stats  *service.StatsService
	ingest *service.IngestService
	logger zerolog.Logger
	stop   func()
}

func openApp(ctx context.Context) (*app, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	log := logger.Console(level)

	if len(sourceFiles) > 0 {
		return openMemoryApp(ctx, log)
	}

	a := &app{logger: log}
	var sqlDB *sql.DB
	fxApp := fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Decorate(func(zerolog.Logger) zerolog.Logger { return log }),
		fx.Decorate(func(cfg *config.Config) *config.Config {
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			return cfg
		}),
		fx.Populate(&a.stats, &a.ingest, &sqlDB),
	)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}
	if err := fxApp.Start(ctx); err != nil {
		return nil, err
	}

	a.stop = func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to stop application")
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database connection")
		}
	}
	return a, nil
}

// openMemoryApp loads --source files into a MemoryStore and computes over it.
func openMemoryApp(ctx context.Context, log zerolog.Logger) (*app, error) {
	store := repository.NewMemoryStore()
	resolver := analytics.NewParResolver(store, log)
	a := &app{
		stats: service.NewStatsService(
			store,
			resolver,
			analytics.NewAverager(store, resolver, log),
			analytics.NewFairwayClassifier(store, log),
			analytics.NewGIREvaluator(store, resolver, log),
			analytics.NewTrendAnalyzer(store, log),
			log,
		),
		ingest: service.NewIngestService(store, store, nil, log),
		logger: log,
		stop:   func() {},
	}

	rep, err := a.ingest.ImportFiles(ctx, sourceFiles)
	if err != nil {
		return nil, err
	}
	log.Info().Int("scorecards", rep.Scorecards).Int("rejected", len(rep.Rejected)).Msg("loaded source files")
	return a, nil
}

// withApp opens the services for the duration of one command.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.stop()
		return run(cmd, args, a)
	}
}
