// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "parentpoints/internal/api"
	"parentpoints/internal/api/handler"
	"parentpoints/internal/config"
	"parentpoints/internal/ledger"
	"parentpoints/internal/persistence"
	"parentpoints/internal/repository"
	"parentpoints/internal/repository/filestore"
	"parentpoints/internal/repository/memory"
	"parentpoints/internal/repository/sqlstore"
	"parentpoints/internal/service"
	"parentpoints/internal/suggest"
	"parentpoints/internal/util"
	"parentpoints/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // nil unless a SQL backend is configured

	// Storage
	BlobRepository repository.BlobRepository
	Store          *persistence.Adapter

	// Services
	Gateway    suggest.Gateway
	KidService service.KidService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "storage_backend", cfg.StorageBackend)

	// 3. Storage substrate
	if err := app.initStorage(ctx); err != nil {
		return err
	}
	app.Store = persistence.NewAdapter(app.BlobRepository, app.Logger)

	// 4. Suggestion gateway
	app.Gateway = app.newGateway(ctx)

	// 5. Initialize Services and load state
	app.KidService = service.NewKidService(
		ledger.NewEngine(),
		app.Store,
		app.Gateway,
		suggest.NewTracker(),
		cfg.Suggestions.Timeout,
		app.Logger,
	)
	if err := app.KidService.Start(ctx); err != nil {
		return fmt.Errorf("failed to load kids: %w", err)
	}
	app.Logger.Info("Kids loaded.", "count", len(app.KidService.List(ctx)))

	// 6. Initialize HTTP Handlers and Router
	kidHandler := handler.NewKidHandler(app.KidService, app.Logger)
	app.HTTPHandler = router.NewRouter(kidHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func (app *Application) initStorage(ctx context.Context) error {
	switch app.Config.StorageBackend {
	case config.BackendMemory:
		app.BlobRepository = memory.NewBlobRepository()
	case config.BackendFile:
		repo, err := filestore.NewBlobRepository(app.Config.StorageFile)
		if err != nil {
			return fmt.Errorf("failed to open storage file: %w", err)
		}
		app.BlobRepository = repo
		app.Logger.Info("File storage ready.", "path", repo.Path())
	case config.BackendPostgres, config.BackendSQLite:
		database, err := db.Open(app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		repo := sqlstore.NewBlobRepository(app.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		app.BlobRepository = repo
		app.Logger.Info("Database connection established.", "driver", app.Config.DB.Driver)
	default:
		return fmt.Errorf("unsupported storage backend %q", app.Config.StorageBackend)
	}
	return nil
}

// newGateway returns the Gemini gateway when a key is configured. Without a
// key, or if the client cannot be built, suggestions fall back to a fixed text.
func (app *Application) newGateway(ctx context.Context) suggest.Gateway {
	sc := app.Config.Suggestions
	if sc.APIKey == "" {
		app.Logger.Warn("No Gemini API key configured; reward suggestions are disabled.")
		return suggest.FallbackGateway{}
	}
	gw, err := suggest.NewGeminiGateway(ctx, sc.APIKey, sc.Model, app.Logger)
	if err != nil {
		app.Logger.Error("Failed to create Gemini client; reward suggestions are disabled.", "error", err)
		return suggest.FallbackGateway{}
	}
	app.Logger.Info("Gemini suggestions enabled.", "model", sc.Model)
	return gw
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.KidService != nil {
		app.KidService.Close()
		app.Logger.Info("Pending suggestion requests stopped.")
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
