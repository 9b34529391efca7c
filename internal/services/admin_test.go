package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type capturingDiseaseRepo struct {
	fakeDiseaseRepo
	created *types.DiseaseInfo
	updates map[string]any
	deleted []uuid.UUID
}

func (c *capturingDiseaseRepo) Create(ctx context.Context, tx *gorm.DB, disease *types.DiseaseInfo) (*types.DiseaseInfo, error) {
	c.created = disease
	return disease, nil
}

func (c *capturingDiseaseRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) (*types.DiseaseInfo, error) {
	c.updates = updates
	return &types.DiseaseInfo{ID: id}, nil
}

func (c *capturingDiseaseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	c.deleted = append(c.deleted, id)
	return nil
}

type capturingMarketPriceRepo struct {
	upserted *types.MarketPrice
}

func (c *capturingMarketPriceRepo) Upsert(ctx context.Context, tx *gorm.DB, price *types.MarketPrice) (*types.MarketPrice, error) {
	c.upserted = price
	return price, nil
}

func TestCreateDiseaseAppliesDefaults(t *testing.T) {
	repo := &capturingDiseaseRepo{}
	svc := NewAdminService(logger.NewNop(), repo, &capturingMarketPriceRepo{})

	created, err := svc.CreateDisease(context.Background(), DiseaseInput{Name: "Septoria Leaf Spot", CureSteps: "Remove infected leaves"})
	if err != nil {
		t.Fatalf("CreateDisease: %v", err)
	}
	if created.VulnerabilityScore != 50 || created.ToxicityRisk != "LOW" || !created.Curable {
		t.Fatalf("defaults not applied: %+v", created)
	}
	if repo.created == nil || repo.created.Name != "Septoria Leaf Spot" {
		t.Fatalf("disease not stored: %+v", repo.created)
	}
}

func TestCreateDiseaseHonorsExplicitFields(t *testing.T) {
	repo := &capturingDiseaseRepo{}
	svc := NewAdminService(logger.NewNop(), repo, &capturingMarketPriceRepo{})

	score := 90
	risk := "HIGH"
	curable := false
	created, err := svc.CreateDisease(context.Background(), DiseaseInput{
		Name:               "Tea Red Rust",
		CureSteps:          "Prune affected branches",
		VulnerabilityScore: &score,
		ToxicityRisk:       &risk,
		Curable:            &curable,
	})
	if err != nil {
		t.Fatalf("CreateDisease: %v", err)
	}
	if created.VulnerabilityScore != 90 || created.ToxicityRisk != "HIGH" || created.Curable {
		t.Fatalf("explicit fields not applied: %+v", created)
	}
}

func TestUpdateDiseaseOnlyTouchesProvidedFields(t *testing.T) {
	repo := &capturingDiseaseRepo{}
	svc := NewAdminService(logger.NewNop(), repo, &capturingMarketPriceRepo{})

	steps := "Updated regimen"
	if _, err := svc.UpdateDisease(context.Background(), uuid.New(), DiseaseUpdateInput{CureSteps: &steps}); err != nil {
		t.Fatalf("UpdateDisease: %v", err)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("updates=%v, want only cure_steps", repo.updates)
	}
	if repo.updates["cure_steps"] != "Updated regimen" {
		t.Fatalf("updates=%v", repo.updates)
	}
}

func TestUpsertMarketPricePassesKeyThrough(t *testing.T) {
	prices := &capturingMarketPriceRepo{}
	svc := NewAdminService(logger.NewNop(), &capturingDiseaseRepo{}, prices)

	plantID := uuid.New()
	stored, err := svc.UpsertMarketPrice(context.Background(), MarketPriceInput{PlantID: plantID, Region: "north", Price: 3.2})
	if err != nil {
		t.Fatalf("UpsertMarketPrice: %v", err)
	}
	if stored.PlantID != plantID || stored.Region != "north" || stored.Price != 3.2 {
		t.Fatalf("stored=%+v", stored)
	}
	if prices.upserted == nil {
		t.Fatal("market price repo not invoked")
	}
}
