package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prediction is an append-only ledger entry. Payload holds the role-shaped
// enrichment output as written at prediction time; it is never rewritten.
type Prediction struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Species      string         `gorm:"column:species;not null" json:"species"`
	Disease      string         `gorm:"column:disease;not null" json:"disease"`
	Confidence   float64        `gorm:"column:confidence;not null" json:"confidence"`
	Severity     string         `gorm:"column:severity;not null" json:"severity"`
	QualityIndex float64        `gorm:"column:quality_index;not null" json:"qualityIndex"`
	Payload      datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt    time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (Prediction) TableName() string { return "prediction" }

// InferenceResult is the classifier's output for one image. It is embedded
// into a Prediction rather than persisted on its own.
type InferenceResult struct {
	Species      string  `json:"species"`
	Disease      string  `json:"disease"`
	Confidence   float64 `json:"confidence"`
	Severity     string  `json:"severity"`
	QualityIndex float64 `json:"quality_index"`
}
