// Package app wires configuration, logging, storage, and services into
// one initialized application core shared by the binaries.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/interfaces"
	"github.com/bobmcallan/worth/internal/services/dashboard"
	"github.com/bobmcallan/worth/internal/services/ledger"
	"github.com/bobmcallan/worth/internal/storage"
)

// App holds the initialized services and storage. It is the shared core
// used by cmd/worth-server and cmd/worth-db.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.LedgerStore
	LedgerService    interfaces.LedgerService
	DashboardService interfaces.DashboardService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the ledger store, and the
// services. configPath may be empty, in which case WORTH_CONFIG, then a
// worth.toml next to the binary, then config/worth.toml are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("WORTH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "worth.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/worth.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewLedgerStore(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		LedgerService:    ledger.NewService(store, logger, interfaces.MissingHistoryDefaults),
		DashboardService: dashboard.NewService(store, logger),
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
