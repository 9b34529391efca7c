package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type DiseaseInfoRepo interface {
	FindFirstByName(ctx context.Context, tx *gorm.DB, name string) (*types.DiseaseInfo, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DiseaseInfo, error)
	Create(ctx context.Context, tx *gorm.DB, disease *types.DiseaseInfo) (*types.DiseaseInfo, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) (*types.DiseaseInfo, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByName(ctx context.Context, tx *gorm.DB, disease *types.DiseaseInfo) error
}

type diseaseInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiseaseInfoRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseInfoRepo {
	repoLog := baseLog.With("repo", "DiseaseInfoRepo")
	return &diseaseInfoRepo{db: db, log: repoLog}
}

func (dr *diseaseInfoRepo) FindFirstByName(ctx context.Context, tx *gorm.DB, name string) (*types.DiseaseInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DiseaseInfo
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *diseaseInfoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DiseaseInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DiseaseInfo
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *diseaseInfoRepo) Create(ctx context.Context, tx *gorm.DB, disease *types.DiseaseInfo) (*types.DiseaseInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Create(disease).Error; err != nil {
		return nil, err
	}
	return disease, nil
}

func (dr *diseaseInfoRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) (*types.DiseaseInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.DiseaseInfo{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	var stored types.DiseaseInfo
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (dr *diseaseInfoRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.DiseaseInfo{}).Error
}

func (dr *diseaseInfoRepo) UpsertByName(ctx context.Context, tx *gorm.DB, disease *types.DiseaseInfo) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	existing, err := dr.FindFirstByName(ctx, transaction, disease.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		return transaction.WithContext(ctx).Create(disease).Error
	}
	return transaction.WithContext(ctx).
		Model(&types.DiseaseInfo{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"cure_steps":          disease.CureSteps,
			"vulnerability_score": disease.VulnerabilityScore,
			"toxicity_risk":       disease.ToxicityRisk,
			"curable":             disease.Curable,
			"disadvantages":       disease.Disadvantages,
			"plant_id":            disease.PlantID,
		}).Error
}
