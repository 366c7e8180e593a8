// Package app wires configuration, storage, providers and the HTTP server
// into a runnable application
package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"weatherwidget.app/api"
	"weatherwidget.app/config"
	"weatherwidget.app/database"
	"weatherwidget.app/providers"
	"weatherwidget.app/repository"
	"weatherwidget.app/scheduler"
	"weatherwidget.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	tracker   *service.TrackerService
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...", "driver", app.config.Database.Driver)

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	store := repository.NewCityStore(app.db, app.config.Widget.StorageKey)

	providerManager, err := app.createProviderManager(store)
	if err != nil {
		return fmt.Errorf("create provider manager: %w", err)
	}

	app.tracker = service.NewTrackerService(store, providerManager)
	app.server = api.NewServer(app.db, app.config, app.tracker)
	app.scheduler = scheduler.NewScheduler(
		app.tracker,
		time.Duration(app.config.Widget.RefreshIntervalMinutes)*time.Minute,
	)

	slog.Info("Services initialized successfully")
	return nil
}

// createProviderManager creates and configures the upstream provider stack
func (app *Application) createProviderManager(cityCache providers.CachedCityLookup) (*providers.ProviderManager, error) {
	slog.Debug("Creating provider manager...")

	providerConfig := &providers.ProviderConfiguration{
		WeatherAPIKey:   app.config.Weather.APIKey,
		WeatherBaseURL:  app.config.Weather.BaseURL,
		GeoDirectURL:    app.config.Geocoding.DirectURL,
		GeoReverseURL:   app.config.Geocoding.ReverseURL,
		GeoResultLimit:  app.config.Geocoding.ResultLimit,
		LocationBaseURL: app.config.Location.BaseURL,
		LocationTimeout: time.Duration(app.config.Location.TimeoutSeconds) * time.Second,
		LocationEnabled: app.config.Location.Enabled,
		CacheTTL:        time.Duration(app.config.Weather.CacheTTLMinutes) * time.Minute,
		EnableCache:     app.config.Weather.EnableCache,
		EnableLogging:   app.config.Weather.EnableLogging,
		CacheType:       providers.CacheTypeFromString(app.config.Cache.Type),
		CacheConfig:     &app.config.Cache,
	}

	providerManager, err := providers.NewProviderManager(providerConfig, cityCache)
	if err != nil {
		return nil, err
	}

	slog.Debug("Provider manager created", "config", providerManager.GetProviderInfo())
	return providerManager, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if err := app.tracker.Initialize(); err != nil {
		return fmt.Errorf("initialize city tracker: %w", err)
	}

	slog.Info("Starting refresh scheduler...")
	go app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
