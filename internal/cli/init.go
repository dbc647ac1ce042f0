// Package cli wires configuration, logging and the backends into the fuvar
// command tree.
package cli

import (
	"context"
	"fmt"

	"fuvar/internal/backend"
	"fuvar/internal/config"
	applog "fuvar/internal/log"
	"fuvar/internal/services"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads the .env file for local use.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the stderr logger at the configured level and sets it as
// the default logger.
func SetupLogger(cfg *config.Config) *applog.Logger {
	lc := applog.DefaultConfig()
	lc.Level = applog.ParseLevel(cfg.LogLevel)
	lc.Component = applog.ComponentCLI
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runtime holds everything a command needs once configuration is loaded.
type runtime struct {
	cfg     *config.Config
	logger  *applog.Logger
	backend *backend.BackendResult
	trips   *services.TripService
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger := SetupLogger(cfg)

	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("open reference store: %w", err)
	}

	trips := services.NewTripService(res.Store, services.Paths{
		Workbook:        cfg.WorkbookPath,
		WorkJournal:     cfg.WorkJournalPath,
		DeliveryJournal: cfg.DeliveryJournalPath,
	}, logger)

	return &runtime{cfg: cfg, logger: logger, backend: res, trips: trips}, nil
}

func (r *runtime) Close() error {
	if r == nil {
		return nil
	}
	return r.backend.Close()
}
