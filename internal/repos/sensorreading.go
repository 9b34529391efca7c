package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type SensorReadingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reading *types.SensorReading) (*types.SensorReading, error)
	LatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SensorReading, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.SensorReading, error)
}

type sensorReadingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSensorReadingRepo(db *gorm.DB, baseLog *logger.Logger) SensorReadingRepo {
	repoLog := baseLog.With("repo", "SensorReadingRepo")
	return &sensorReadingRepo{db: db, log: repoLog}
}

func (sr *sensorReadingRepo) Create(ctx context.Context, tx *gorm.DB, reading *types.SensorReading) (*types.SensorReading, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(reading).Error; err != nil {
		return nil, err
	}
	return reading, nil
}

func (sr *sensorReadingRepo) LatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SensorReading, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SensorReading
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *sensorReadingRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.SensorReading, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if limit <= 0 {
		limit = 50
	}

	var results []*types.SensorReading
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
