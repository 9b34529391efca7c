package services

import (
	"context"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type PlantUpsertInput struct {
	Species         string  `json:"species" binding:"required"`
	MedicinalValue  string  `json:"medicinalValue" binding:"required"`
	NutritionalInfo string  `json:"nutritionalInfo" binding:"required"`
	AvgMarketPrice  float64 `json:"avgMarketPrice" binding:"required"`
	Cures           string  `json:"cures" binding:"required"`
	RecommendedSoil *string `json:"recommendedSoil"`
}

type PlantService interface {
	GetBySpecies(ctx context.Context, species string) (*types.PlantInfo, error)
	Upsert(ctx context.Context, input PlantUpsertInput) (*types.PlantInfo, error)
	List(ctx context.Context) ([]*types.PlantInfo, error)
}

type plantService struct {
	log       *logger.Logger
	plantRepo repos.PlantInfoRepo
}

func NewPlantService(log *logger.Logger, plantRepo repos.PlantInfoRepo) PlantService {
	return &plantService{
		log:       log.With("service", "PlantService"),
		plantRepo: plantRepo,
	}
}

func (ps *plantService) GetBySpecies(ctx context.Context, species string) (*types.PlantInfo, error) {
	return ps.plantRepo.GetBySpeciesInsensitive(ctx, nil, species)
}

func (ps *plantService) Upsert(ctx context.Context, input PlantUpsertInput) (*types.PlantInfo, error) {
	plant := &types.PlantInfo{
		Species:         input.Species,
		MedicinalValue:  input.MedicinalValue,
		NutritionalInfo: input.NutritionalInfo,
		AvgMarketPrice:  input.AvgMarketPrice,
		Cures:           input.Cures,
		RecommendedSoil: input.RecommendedSoil,
	}
	return ps.plantRepo.Upsert(ctx, nil, plant)
}

func (ps *plantService) List(ctx context.Context) ([]*types.PlantInfo, error) {
	return ps.plantRepo.List(ctx, nil)
}
