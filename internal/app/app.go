package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/db"
	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/seed"
	"github.com/agrisight/agrisight-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *sse.SSEHub
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Sync()
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	hub := sse.NewSSEHub(log)

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(log, cfg, reposet, hub)
	if err != nil {
		log.Sync()
		return nil, err
	}

	if cfg.SeedOnStart {
		seeder := seed.NewSeeder(theDB, log, reposet.PlantInfo, reposet.DiseaseInfo)
		if err := seeder.Run(context.Background()); err != nil {
			log.Sync()
			return nil, fmt.Errorf("seed reference data: %w", err)
		}
	}

	handlerset := wireHandlers(log, cfg, serviceset, hub)
	mw := wireMiddleware(log, cfg, serviceset)
	router := wireRouter(cfg, handlerset, mw)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		SSEHub:   hub,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
