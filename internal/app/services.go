package app

import (
	"context"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/services"
	"github.com/agrisight/agrisight-backend/internal/sse"
)

type Services struct {
	Auth       services.AuthService
	Inference  services.InferenceClient
	Narrative  services.NarrativeService
	Enrichment services.EnrichmentService
	Prediction services.PredictionService
	Sensor     services.SensorService
	Plant      services.PlantService
	Admin      services.AdminService
	Dataset    services.DatasetService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, hub *sse.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	// Narrative generation is optional: without a Gemini credential the
	// service runs on deterministic fallback content only.
	var generator services.TextGenerator
	if cfg.GeminiAPIKey != "" {
		g, err := services.NewGeminiGenerator(context.Background(), log, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return Services{}, err
		}
		generator = g
	} else {
		log.Warn("GEMINI_API_KEY not set; narratives use fallback content only")
	}

	inference := services.NewInferenceClient(log, cfg.InferenceURL)
	narrative := services.NewNarrativeService(log, generator)
	enrichment := services.NewEnrichmentService(log, reposet.PlantInfo, reposet.DiseaseInfo, reposet.SensorReading, narrative)
	prediction := services.NewPredictionService(log, inference, enrichment, narrative, reposet.Prediction)
	sensor := services.NewSensorService(log, reposet.SensorReading, hub)
	plant := services.NewPlantService(log, reposet.PlantInfo)
	admin := services.NewAdminService(log, reposet.DiseaseInfo, reposet.MarketPrice)
	dataset := services.NewDatasetService(log, reposet.Dataset, reposet.DatasetItem, cfg.UploadsDir)
	auth := services.NewAuthService(log, reposet.User, cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return Services{
		Auth:       auth,
		Inference:  inference,
		Narrative:  narrative,
		Enrichment: enrichment,
		Prediction: prediction,
		Sensor:     sensor,
		Plant:      plant,
		Admin:      admin,
		Dataset:    dataset,
	}, nil
}
