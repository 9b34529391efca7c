package types

import (
	"time"

	"github.com/google/uuid"
)

// PlantInfo is the shared plant catalog, administered centrally and read
// during role enrichment.
type PlantInfo struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Species         string        `gorm:"column:species;uniqueIndex;not null" json:"species"`
	MedicinalValue  string        `gorm:"column:medicinal_value;not null" json:"medicinalValue"`
	NutritionalInfo string        `gorm:"column:nutritional_info;not null" json:"nutritionalInfo"`
	AvgMarketPrice  float64       `gorm:"column:avg_market_price;not null" json:"avgMarketPrice"`
	Cures           string        `gorm:"column:cures;not null" json:"cures"`
	RecommendedSoil *string       `gorm:"column:recommended_soil" json:"recommendedSoil,omitempty"`
	DiseaseInfo     []DiseaseInfo `gorm:"foreignKey:PlantID;references:ID" json:"diseaseInfo,omitempty"`
	MarketPrices    []MarketPrice `gorm:"foreignKey:PlantID;references:ID" json:"marketPrices,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlantInfo) TableName() string { return "plant_info" }

// DiseaseInfo has an independent lifecycle from plants; the plant reference
// is nullable.
type DiseaseInfo struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name               string     `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CureSteps          string     `gorm:"column:cure_steps;not null" json:"cureSteps"`
	VulnerabilityScore int        `gorm:"column:vulnerability_score;not null;default:50" json:"vulnerabilityScore"`
	ToxicityRisk       string     `gorm:"column:toxicity_risk;not null;default:'LOW'" json:"toxicityRisk"`
	Curable            bool       `gorm:"column:curable;not null;default:true" json:"curable"`
	Disadvantages      *string    `gorm:"column:disadvantages" json:"disadvantages,omitempty"`
	PlantID            *uuid.UUID `gorm:"type:uuid;index" json:"plant_id,omitempty"`
	Plant              *PlantInfo `gorm:"constraint:OnDelete:SET NULL;foreignKey:PlantID;references:ID" json:"plant,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DiseaseInfo) TableName() string { return "disease_info" }

// MarketPrice is unique per (plant, region) and upserted on conflict.
type MarketPrice struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PlantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_market_price_plant_region" json:"plant_id"`
	Region    string    `gorm:"column:region;not null;uniqueIndex:idx_market_price_plant_region" json:"region"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarketPrice) TableName() string { return "market_price" }
