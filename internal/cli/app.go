package cli

import (
	"context"
	"os"

	"tasklog/internal/config"
	"tasklog/internal/errors"
	"tasklog/internal/logging"
	"tasklog/internal/report"
	"tasklog/internal/services"
	"tasklog/internal/storage"
)

// App holds the loaded configuration and the services a command runs
// against.
type App struct {
	Config   *config.Config
	Services *services.ServiceContainer
	store    storage.DayStore
}

// AppOpener builds an App from the settings file at configPath with the
// command line overrides applied.
type AppOpener func(ctx context.Context, configPath string, overrides *config.ConfigOverrides) (*App, error)

// NewApp creates an App over an existing service container.
func NewApp(cfg *config.Config, container *services.ServiceContainer) *App {
	return &App{
		Config:   cfg,
		Services: container,
	}
}

// OpenApp loads the configuration, prepares the data directory and opens
// the configured day store.
func OpenApp(ctx context.Context, configPath string, overrides *config.ConfigOverrides) (*App, error) {
	cfg, err := config.NewLoader(configPath).LoadWithOverrides(overrides)
	if err != nil {
		return nil, err
	}
	logging.SetVerbose(cfg.Application.Verbose)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, errors.NewConfigError("cannot create data directory "+cfg.DataDir, err)
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logging.Debugf("using %s storage in %s\n", cfg.Storage.Backend, cfg.DataDir)

	container := services.NewServiceContainer(store,
		services.WithDayStart(cfg.GetDayStart()),
		services.WithLimits(cfg.GetValidationLimits()),
		services.WithFormatter(report.NewFormatter(report.WithColor(cfg.Display.Color))),
	)

	app := NewApp(cfg, container)
	app.store = store
	return app, nil
}

// Close releases the day store, if the App owns one.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
