package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type DatasetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dataset *types.Dataset) (*types.Dataset, error)
	UpdateStats(ctx context.Context, tx *gorm.DB, id uuid.UUID, classes datatypes.JSON, imageCount int) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Dataset, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Dataset, error)
}

type DatasetItemRepo interface {
	CreateMany(ctx context.Context, tx *gorm.DB, items []*types.DatasetItem) ([]*types.DatasetItem, error)
	ListByDatasetID(ctx context.Context, tx *gorm.DB, datasetID uuid.UUID, limit int) ([]*types.DatasetItem, error)
}

type datasetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	repoLog := baseLog.With("repo", "DatasetRepo")
	return &datasetRepo{db: db, log: repoLog}
}

func (dr *datasetRepo) Create(ctx context.Context, tx *gorm.DB, dataset *types.Dataset) (*types.Dataset, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Create(dataset).Error; err != nil {
		return nil, err
	}
	return dataset, nil
}

func (dr *datasetRepo) UpdateStats(ctx context.Context, tx *gorm.DB, id uuid.UUID, classes datatypes.JSON, imageCount int) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Dataset{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"classes":     classes,
			"image_count": imageCount,
		}).Error
}

func (dr *datasetRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Dataset, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.Dataset
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *datasetRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Dataset, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Dataset
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type datasetItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetItemRepo(db *gorm.DB, baseLog *logger.Logger) DatasetItemRepo {
	repoLog := baseLog.With("repo", "DatasetItemRepo")
	return &datasetItemRepo{db: db, log: repoLog}
}

func (dr *datasetItemRepo) CreateMany(ctx context.Context, tx *gorm.DB, items []*types.DatasetItem) ([]*types.DatasetItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(items) == 0 {
		return []*types.DatasetItem{}, nil
	}

	if err := transaction.WithContext(ctx).CreateInBatches(&items, 500).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (dr *datasetItemRepo) ListByDatasetID(ctx context.Context, tx *gorm.DB, datasetID uuid.UUID, limit int) ([]*types.DatasetItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if limit <= 0 {
		limit = 100
	}

	var results []*types.DatasetItem
	if err := transaction.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
