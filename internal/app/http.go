package app

import (
	"github.com/agrisight/agrisight-backend/internal/handlers"
	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/middleware"
	"github.com/agrisight/agrisight-backend/internal/sse"
)

type Middleware struct {
	Auth        *middleware.AuthMiddleware
	AuthLimiter *middleware.RateLimiter
}

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Prediction *handlers.PredictionHandler
	Sensor     *handlers.SensorHandler
	Plant      *handlers.PlantHandler
	Admin      *handlers.AdminHandler
	Realtime   *handlers.RealtimeHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services, hub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		Prediction: handlers.NewPredictionHandler(log, serviceset.Prediction, cfg.UploadsDir),
		Sensor:     handlers.NewSensorHandler(serviceset.Sensor),
		Plant:      handlers.NewPlantHandler(serviceset.Plant),
		Admin:      handlers.NewAdminHandler(log, serviceset.Admin, serviceset.Dataset, serviceset.Prediction, cfg.UploadsDir),
		Realtime:   handlers.NewRealtimeHandler(log, hub),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        middleware.NewAuthMiddleware(log, serviceset.Auth),
		AuthLimiter: middleware.NewRateLimiter(log, float64(cfg.AuthRateRPS), cfg.AuthRateBurst),
	}
}
