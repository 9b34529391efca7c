package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type PredictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Prediction, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Prediction, error)
}

type predictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	repoLog := baseLog.With("repo", "PredictionRepo")
	return &predictionRepo{db: db, log: repoLog}
}

func (pr *predictionRepo) Create(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(prediction).Error; err != nil {
		return nil, err
	}
	return prediction, nil
}

func (pr *predictionRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if limit <= 0 {
		limit = 10
	}

	var results []*types.Prediction
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *predictionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Prediction
	if err := transaction.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email", "role", "name")
		}).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
