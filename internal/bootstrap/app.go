package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"stress-backend/internal/analyses"
	"stress-backend/internal/detection"
	"stress-backend/internal/services/health"
	"stress-backend/internal/shared/config"
	"stress-backend/internal/shared/server"
	"stress-backend/internal/shared/server/middleware"
	"stress-backend/internal/shared/storage/db"
	"stress-backend/internal/shared/storage/object"
	localstore "stress-backend/internal/shared/storage/object/local"
	s3store "stress-backend/internal/shared/storage/object/s3"
	"stress-backend/internal/shared/telemetry"
	"stress-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	Detector        detection.Detector
	UsersRepo       users.Repo
	AnalysesRepo    analyses.Repo
	UsersService    *users.Service
	AnalysesService *analyses.Service
	UsersHandler    *users.Handler
	AnalysisHandler *analyses.Handler
}

// Build prepares dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	detector, err := buildDetector(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Detector: detector,
	}
	buildServices(app)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(pinger),
		UserHandler:     app.UsersHandler,
		AnalysisHandler: app.AnalysisHandler,
		RateLimiter:     middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildDetector(cfg config.Config) (detection.Detector, error) {
	if strings.TrimSpace(cfg.DetectorURL) == "" {
		telemetry.Warn("bootstrap.detector_unconfigured", map[string]any{"reason": "DETECTOR_URL empty"})
		return detection.Unconfigured{}, nil
	}
	return detection.NewHTTPDetector(cfg.DetectorURL, detection.Thresholds{
		Happy:   cfg.HappyThreshold,
		Neutral: cfg.NeutralThreshold,
	})
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.AnalysesService = analyses.NewService(app.AnalysesRepo, app.Store, app.Detector)
	app.AnalysesService.PageLimit = app.Config.HistoryPageLimit

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
