package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

const (
	advisoryUrgent  = "Immediate intervention recommended."
	advisoryRoutine = "Monitor crop health regularly."
)

type EnrichmentService interface {
	// EnrichForRole shapes one of four payloads from the inference result and
	// the requester's reference data. Missing catalog or sensor rows degrade
	// to placeholders; only infrastructure failures surface as errors.
	EnrichForRole(ctx context.Context, role types.UserRole, inference *types.InferenceResult, userID uuid.UUID) (any, error)
}

type enrichmentService struct {
	log         *logger.Logger
	plantRepo   repos.PlantInfoRepo
	diseaseRepo repos.DiseaseInfoRepo
	sensorRepo  repos.SensorReadingRepo
	narrative   NarrativeService
}

func NewEnrichmentService(
	log *logger.Logger,
	plantRepo repos.PlantInfoRepo,
	diseaseRepo repos.DiseaseInfoRepo,
	sensorRepo repos.SensorReadingRepo,
	narrative NarrativeService,
) EnrichmentService {
	return &enrichmentService{
		log:         log.With("service", "EnrichmentService"),
		plantRepo:   plantRepo,
		diseaseRepo: diseaseRepo,
		sensorRepo:  sensorRepo,
		narrative:   narrative,
	}
}

func (es *enrichmentService) EnrichForRole(ctx context.Context, role types.UserRole, inference *types.InferenceResult, userID uuid.UUID) (any, error) {
	plant, err := es.plantRepo.FindFirstBySpecies(ctx, nil, inference.Species)
	if err != nil {
		return nil, err
	}
	disease, err := es.diseaseRepo.FindFirstByName(ctx, nil, inference.Disease)
	if err != nil {
		return nil, err
	}
	latestSensor, err := es.sensorRepo.LatestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	switch role {
	case types.RoleFarmer:
		return es.farmerPayload(ctx, inference, plant, disease), nil
	case types.RoleAgriIndustry:
		return es.agriIndustryPayload(ctx, inference, plant, latestSensor), nil
	case types.RolePharmaIndustry:
		return es.pharmaPayload(ctx, inference, plant, disease), nil
	default:
		// ADMIN and anything unmapped get the raw passthrough, no narrative.
		return &types.AdminPayload{
			Species:      inference.Species,
			Disease:      inference.Disease,
			Confidence:   inference.Confidence,
			Severity:     inference.Severity,
			QualityIndex: inference.QualityIndex,
			PlantInfo:    plant,
			DiseaseInfo:  disease,
			LatestSensor: latestSensor,
		}, nil
	}
}

func (es *enrichmentService) farmerPayload(ctx context.Context, inference *types.InferenceResult, plant *types.PlantInfo, disease *types.DiseaseInfo) *types.FarmerPayload {
	payload := &types.FarmerPayload{
		Disease:            inference.Disease,
		CureSteps:          "Consult local agronomist.",
		VulnerabilityScore: 50,
		Curable:            true,
		MedicinalValue:     "Data unavailable",
		QualityIndex:       inference.QualityIndex,
		Severity:           inference.Severity,
		Advisory:           advisoryRoutine,
	}
	if inference.Severity == "high" {
		payload.Advisory = advisoryUrgent
	}
	if disease != nil {
		payload.CureSteps = disease.CureSteps
		payload.VulnerabilityScore = disease.VulnerabilityScore
		payload.Curable = disease.Curable
	}
	if plant != nil {
		payload.MedicinalValue = plant.MedicinalValue
		price := plant.AvgMarketPrice
		payload.AverageMarketPrice = &price
	}
	payload.AIDescription = es.narrative.Describe(ctx, types.RoleFarmer, NarrativeInput{
		Species:        inference.Species,
		Disease:        inference.Disease,
		Severity:       inference.Severity,
		QualityIndex:   inference.QualityIndex,
		MedicinalValue: payload.MedicinalValue,
	})
	return payload
}

func (es *enrichmentService) agriIndustryPayload(ctx context.Context, inference *types.InferenceResult, plant *types.PlantInfo, latestSensor *types.SensorReading) *types.AgriIndustryPayload {
	payload := &types.AgriIndustryPayload{
		Species:                    inference.Species,
		HealthCondition:            inference.Severity,
		SoilFertilitySuggestions:   "Maintain balanced NPK with organic matter.",
		NutrientDeficiencyAnalysis: "No nutritional insights available.",
		RealTimeSensor:             latestSensor,
		PlantInformation:           plant,
		QualityIndex:               inference.QualityIndex,
	}
	if plant != nil {
		if plant.RecommendedSoil != nil {
			payload.SoilFertilitySuggestions = *plant.RecommendedSoil
		}
		payload.NutrientDeficiencyAnalysis = plant.NutritionalInfo
	}
	payload.AIDescription = es.narrative.Describe(ctx, types.RoleAgriIndustry, NarrativeInput{
		Species:         inference.Species,
		Disease:         inference.Disease,
		Severity:        inference.Severity,
		QualityIndex:    inference.QualityIndex,
		NutritionalInfo: payload.NutrientDeficiencyAnalysis,
	})
	return payload
}

func (es *enrichmentService) pharmaPayload(ctx context.Context, inference *types.InferenceResult, plant *types.PlantInfo, disease *types.DiseaseInfo) *types.PharmaPayload {
	payload := &types.PharmaPayload{
		MedicinalUses:    "Unknown",
		NutritionalValue: "Unknown",
		HealthPercentage: inference.QualityIndex,
		ToxicityRisk:     "LOW",
		Curable:          true,
		Disadvantages:    "Further research required.",
		Severity:         inference.Severity,
	}
	if plant != nil {
		payload.MedicinalUses = plant.MedicinalValue
		payload.NutritionalValue = plant.NutritionalInfo
	}
	if disease != nil {
		payload.ToxicityRisk = disease.ToxicityRisk
		payload.Curable = disease.Curable
		if disease.Disadvantages != nil {
			payload.Disadvantages = *disease.Disadvantages
		}
	}
	payload.AIDescription = es.narrative.Describe(ctx, types.RolePharmaIndustry, NarrativeInput{
		Species:        inference.Species,
		Disease:        inference.Disease,
		Severity:       inference.Severity,
		QualityIndex:   inference.QualityIndex,
		MedicinalValue: payload.MedicinalUses,
		ToxicityRisk:   payload.ToxicityRisk,
	})
	return payload
}
