// Package cli provides the process bootstrap shared by the taccuino commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"taccuino/internal/backend"
	"taccuino/internal/config"
	"taccuino/internal/format"
	"taccuino/internal/kv"
	"taccuino/internal/log"
	"taccuino/internal/services"
)

// SetupLogger builds the process logger from cfg and sets it as the default
// logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    os.Stderr,
	})
	if err != nil {
		logger.Warn("Unknown log level, using info", "log_level", cfg.LogLevel)
	}
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitBackend creates the storage backend selected by cfg.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("init backend: %w", err)
	}
	return result, nil
}

// App is the wired data layer a command works against.
type App struct {
	Config     *config.Config
	Logger     *log.Logger
	Store      *kv.Store
	Expenses   *services.ExpenseService
	Categories *services.CategoryService
	Formatter  *format.Formatter

	backend *backend.BackendResult
}

// Bootstrap loads the environment, opens the backend and seeds the category
// set on first use.
func Bootstrap(ctx context.Context) (*App, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger := SetupLogger(cfg)

	formatter, err := format.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	result, err := InitBackend(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}

	store := kv.New(result.Backend,
		kv.WithNamespace(cfg.StoreNamespace),
		kv.WithLogger(logger.WithComponent(log.ComponentStore)))

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Expenses:   services.NewExpenseService(store, logger.WithComponent(log.ComponentExpense)),
		Categories: services.NewCategoryService(store, cfg.CategorySeedFile, logger.WithComponent(log.ComponentCategory)),
		Formatter:  formatter,
		backend:    result,
	}

	if _, err := app.Categories.SeedDefaults(ctx); err != nil {
		app.Close()
		return nil, err
	}

	logger.DebugContext(ctx, "Data layer ready",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldNamespace, cfg.StoreNamespace)
	return app, nil
}

// Close releases the backend.
func (a *App) Close() error {
	if err := a.backend.Close(); err != nil {
		a.Logger.Error("Failed to close backend", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		return err
	}
	return nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
