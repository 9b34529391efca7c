package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type PlantInfoRepo interface {
	// FindFirstBySpecies is a loose first-match lookup used by enrichment.
	// It does not apply the case-insensitive uniqueness the catalog read
	// endpoint uses; duplicates, if ever present, resolve arbitrarily.
	FindFirstBySpecies(ctx context.Context, tx *gorm.DB, species string) (*types.PlantInfo, error)
	GetBySpeciesInsensitive(ctx context.Context, tx *gorm.DB, species string) (*types.PlantInfo, error)
	Upsert(ctx context.Context, tx *gorm.DB, plant *types.PlantInfo) (*types.PlantInfo, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.PlantInfo, error)
}

type plantInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlantInfoRepo(db *gorm.DB, baseLog *logger.Logger) PlantInfoRepo {
	repoLog := baseLog.With("repo", "PlantInfoRepo")
	return &plantInfoRepo{db: db, log: repoLog}
}

func (pr *plantInfoRepo) FindFirstBySpecies(ctx context.Context, tx *gorm.DB, species string) (*types.PlantInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PlantInfo
	err := transaction.WithContext(ctx).
		Preload("DiseaseInfo").
		Preload("MarketPrices").
		Where("species = ?", species).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *plantInfoRepo) GetBySpeciesInsensitive(ctx context.Context, tx *gorm.DB, species string) (*types.PlantInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PlantInfo
	err := transaction.WithContext(ctx).
		Preload("DiseaseInfo").
		Preload("MarketPrices").
		Where("LOWER(species) = LOWER(?)", species).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *plantInfoRepo) Upsert(ctx context.Context, tx *gorm.DB, plant *types.PlantInfo) (*types.PlantInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "species"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"medicinal_value", "nutritional_info", "avg_market_price",
				"cures", "recommended_soil", "updated_at",
			}),
		}).
		Create(plant).Error; err != nil {
		return nil, err
	}

	var stored types.PlantInfo
	if err := transaction.WithContext(ctx).
		Where("species = ?", plant.Species).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (pr *plantInfoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.PlantInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PlantInfo
	if err := transaction.WithContext(ctx).
		Preload("DiseaseInfo").
		Preload("MarketPrices").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
