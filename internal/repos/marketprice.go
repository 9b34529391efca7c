package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type MarketPriceRepo interface {
	// Upsert is idempotent on (plant_id, region): a repeat write for the same
	// key replaces the price in place.
	Upsert(ctx context.Context, tx *gorm.DB, price *types.MarketPrice) (*types.MarketPrice, error)
}

type marketPriceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarketPriceRepo(db *gorm.DB, baseLog *logger.Logger) MarketPriceRepo {
	repoLog := baseLog.With("repo", "MarketPriceRepo")
	return &marketPriceRepo{db: db, log: repoLog}
}

func (mr *marketPriceRepo) Upsert(ctx context.Context, tx *gorm.DB, price *types.MarketPrice) (*types.MarketPrice, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plant_id"}, {Name: "region"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(price).Error; err != nil {
		return nil, err
	}

	var stored types.MarketPrice
	if err := transaction.WithContext(ctx).
		Where("plant_id = ? AND region = ?", price.PlantID, price.Region).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
