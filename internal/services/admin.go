package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type DiseaseInput struct {
	Name               string     `json:"name" binding:"required"`
	CureSteps          string     `json:"cureSteps" binding:"required"`
	VulnerabilityScore *int       `json:"vulnerabilityScore"`
	ToxicityRisk       *string    `json:"toxicityRisk"`
	Curable            *bool      `json:"curable"`
	Disadvantages      *string    `json:"disadvantages"`
	PlantID            *uuid.UUID `json:"plantId"`
}

type DiseaseUpdateInput struct {
	Name               *string    `json:"name"`
	CureSteps          *string    `json:"cureSteps"`
	VulnerabilityScore *int       `json:"vulnerabilityScore"`
	ToxicityRisk       *string    `json:"toxicityRisk"`
	Curable            *bool      `json:"curable"`
	Disadvantages      *string    `json:"disadvantages"`
	PlantID            *uuid.UUID `json:"plantId"`
}

type MarketPriceInput struct {
	PlantID uuid.UUID `json:"plantId" binding:"required"`
	Region  string    `json:"region" binding:"required"`
	Price   float64   `json:"price" binding:"required"`
}

// AdminService owns the centrally administered catalog writes.
type AdminService interface {
	CreateDisease(ctx context.Context, input DiseaseInput) (*types.DiseaseInfo, error)
	UpdateDisease(ctx context.Context, id uuid.UUID, input DiseaseUpdateInput) (*types.DiseaseInfo, error)
	DeleteDisease(ctx context.Context, id uuid.UUID) error
	UpsertMarketPrice(ctx context.Context, input MarketPriceInput) (*types.MarketPrice, error)
}

type adminService struct {
	log             *logger.Logger
	diseaseRepo     repos.DiseaseInfoRepo
	marketPriceRepo repos.MarketPriceRepo
}

func NewAdminService(log *logger.Logger, diseaseRepo repos.DiseaseInfoRepo, marketPriceRepo repos.MarketPriceRepo) AdminService {
	return &adminService{
		log:             log.With("service", "AdminService"),
		diseaseRepo:     diseaseRepo,
		marketPriceRepo: marketPriceRepo,
	}
}

func (as *adminService) CreateDisease(ctx context.Context, input DiseaseInput) (*types.DiseaseInfo, error) {
	disease := &types.DiseaseInfo{
		ID:                 uuid.New(),
		Name:               input.Name,
		CureSteps:          input.CureSteps,
		VulnerabilityScore: 50,
		ToxicityRisk:       "LOW",
		Curable:            true,
		Disadvantages:      input.Disadvantages,
		PlantID:            input.PlantID,
	}
	if input.VulnerabilityScore != nil {
		disease.VulnerabilityScore = *input.VulnerabilityScore
	}
	if input.ToxicityRisk != nil {
		disease.ToxicityRisk = *input.ToxicityRisk
	}
	if input.Curable != nil {
		disease.Curable = *input.Curable
	}
	return as.diseaseRepo.Create(ctx, nil, disease)
}

func (as *adminService) UpdateDisease(ctx context.Context, id uuid.UUID, input DiseaseUpdateInput) (*types.DiseaseInfo, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.CureSteps != nil {
		updates["cure_steps"] = *input.CureSteps
	}
	if input.VulnerabilityScore != nil {
		updates["vulnerability_score"] = *input.VulnerabilityScore
	}
	if input.ToxicityRisk != nil {
		updates["toxicity_risk"] = *input.ToxicityRisk
	}
	if input.Curable != nil {
		updates["curable"] = *input.Curable
	}
	if input.Disadvantages != nil {
		updates["disadvantages"] = *input.Disadvantages
	}
	if input.PlantID != nil {
		updates["plant_id"] = *input.PlantID
	}
	return as.diseaseRepo.Update(ctx, nil, id, updates)
}

func (as *adminService) DeleteDisease(ctx context.Context, id uuid.UUID) error {
	return as.diseaseRepo.Delete(ctx, nil, id)
}

func (as *adminService) UpsertMarketPrice(ctx context.Context, input MarketPriceInput) (*types.MarketPrice, error) {
	return as.marketPriceRepo.Upsert(ctx, nil, &types.MarketPrice{
		ID:      uuid.New(),
		PlantID: input.PlantID,
		Region:  input.Region,
		Price:   input.Price,
	})
}
