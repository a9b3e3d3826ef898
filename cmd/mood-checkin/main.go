package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/belphemur/mood-checkin/internal/checkin"
	"github.com/belphemur/mood-checkin/internal/config"
	"github.com/belphemur/mood-checkin/internal/database"
	"github.com/belphemur/mood-checkin/internal/journal"
	"github.com/belphemur/mood-checkin/internal/logging"
	appSignals "github.com/belphemur/mood-checkin/internal/signals"
	"github.com/belphemur/mood-checkin/internal/terminal"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	isDev := os.Getenv("ENV") != "production"

	// stdout belongs to the form
	logging.Initialize(isDev, os.Stderr)
	logger := logging.GetLogger("main")

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", date).
		Msg("Starting Weekly Wellness Check-in")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		cancel()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Application run failed")
	}
}

func run(ctx context.Context) error {
	logger := logging.GetLogger("main")

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "configs/checkin.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Str("config_path", configPath).Msg("Failed to load configuration")
		return err
	}

	logging.SetLogLevel(cfg.Service.LogLevel)
	logger.Debug().Str("log_level", cfg.Service.LogLevel).Msg("Log level set")

	term := terminal.New(os.Stdin, os.Stdout)
	journalWriter := journal.New(cfg.Journal.Directory,
		journal.WithFilePrefix(cfg.Journal.FilePrefix),
		journal.WithDateLayout(cfg.Journal.DateLayout),
	)
	logger.Info().Str("journal_file", journalWriter.Path()).Msg("Journal ready")

	var persister checkin.Persister = journalWriter
	if cfg.History.Enabled {
		db, store, err := openArchive(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		showRecent(ctx, cfg, store, term)
		persister = database.NewArchivingPersister(store, journalWriter)
	}

	appSignals.OnCheckInProcessed(func(ctx context.Context, data appSignals.CheckInProcessedData) {
		auditLogger := logging.GetLogger("signal-checkin-processed")
		if data.Accepted {
			auditLogger.Info().Str("name", data.Name).Float64("average", data.Average).Msg("Check-in recorded")
			return
		}
		auditLogger.Info().Str("name", data.Name).Int("problems", data.Problems).Msg("Check-in refused")
	}, "main-checkin-audit")

	processor := checkin.NewProcessor(persister, term)
	session := terminal.NewSession(term, processor)

	runErr := session.Run(ctx)

	stats := processor.Stats()
	logger.Info().Int64("accepted", stats.Accepted).Int64("rejected", stats.Rejected).Msg("Session finished")

	if runErr != nil {
		var persistErr *checkin.PersistenceError
		if errors.As(runErr, &persistErr) {
			logger.Error().Err(runErr).Str("path", persistErr.Path).Msg("Check-in could not be saved")
		}
		return runErr
	}
	return nil
}

// openArchive opens and migrates the history database
func openArchive(ctx context.Context, cfg *config.Config) (*database.DB, *database.CheckInStore, error) {
	logger := logging.GetLogger("main")

	if err := os.MkdirAll(filepath.Dir(cfg.History.StateFile), 0755); err != nil {
		logger.Error().Err(err).Str("path", filepath.Dir(cfg.History.StateFile)).Msg("Failed to create data directory")
		return nil, nil, err
	}

	db, err := database.New(database.NewDefaultOptions(cfg.History.StateFile))
	if err != nil {
		wrappedErr := fmt.Errorf("failed to initialize database: %w", err)
		logger.Error().Err(wrappedErr).Str("db_path", cfg.History.StateFile).Msg("Database initialization failed")
		return nil, nil, wrappedErr
	}

	if err := db.MigrateDatabase(); err != nil {
		db.Close()
		wrappedErr := fmt.Errorf("failed to initialize database schema: %w", err)
		logger.Error().Err(wrappedErr).Msg("Database schema initialization failed")
		return nil, nil, wrappedErr
	}

	store := database.NewCheckInStore(db)
	year, month, day := time.Now().Date()
	today, err := store.CountSince(ctx, time.Date(year, month, day, 0, 0, 0, 0, time.Local))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to count today's check-ins")
	} else {
		logger.Info().Int("check_ins_today", today).Msg("History archive ready")
	}

	return db, store, nil
}

// showRecent prints the latest archived check-ins above the first form
func showRecent(ctx context.Context, cfg *config.Config, store *database.CheckInStore, term *terminal.Terminal) {
	logger := logging.GetLogger("main")

	recent, err := store.Recent(ctx, cfg.History.RecentLimit, cfg.History.Order)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load recent check-ins")
		return
	}
	if err := term.ShowHistory(recent); err != nil {
		logger.Warn().Err(err).Msg("Failed to show recent check-ins")
	}
}
