package types

import (
	"time"

	"github.com/google/uuid"
)

// SensorReading is append-only; the most recent reading per owner feeds role
// enrichment and the live broadcast.
type SensorReading struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Ph          float64   `gorm:"column:ph;not null" json:"ph"`
	Ec          float64   `gorm:"column:ec;not null" json:"ec"`
	Moisture    float64   `gorm:"column:moisture;not null" json:"moisture"`
	Temperature float64   `gorm:"column:temperature;not null" json:"temperature"`
	CreatedAt   time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (SensorReading) TableName() string { return "sensor_reading" }
