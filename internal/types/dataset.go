package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dataset's Classes and ImageCount are derived from its items and rewritten
// after ingestion completes.
type Dataset struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description *string        `gorm:"column:description" json:"description,omitempty"`
	Source      *string        `gorm:"column:source" json:"source,omitempty"`
	Classes     datatypes.JSON `gorm:"column:classes;type:jsonb" json:"classes"`
	ImageCount  int            `gorm:"column:image_count;not null;default:0" json:"imageCount"`
	CreatedAt   time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Dataset) TableName() string { return "dataset" }

type DatasetItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;index" json:"dataset_id"`
	Dataset   *Dataset  `gorm:"constraint:OnDelete:CASCADE;foreignKey:DatasetID;references:ID" json:"dataset,omitempty"`
	ImagePath string    `gorm:"column:image_path;not null" json:"imagePath"`
	Label     *string   `gorm:"column:label" json:"label,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (DatasetItem) TableName() string { return "dataset_item" }
