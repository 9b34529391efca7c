package types

// Role-shaped prediction payloads. One of these four shapes is stored on the
// Prediction record depending on the owning user's role at write time, so
// consumers of stored predictions must branch on that role to interpret the
// payload JSON.

type FarmerPayload struct {
	Disease            string            `json:"disease"`
	CureSteps          string            `json:"cureSteps"`
	VulnerabilityScore int               `json:"vulnerabilityScore"`
	Curable            bool              `json:"curable"`
	MedicinalValue     string            `json:"medicinalValue"`
	AverageMarketPrice *float64          `json:"averageMarketPrice"`
	QualityIndex       float64           `json:"qualityIndex"`
	Severity           string            `json:"severity"`
	Advisory           string            `json:"advisory"`
	AIDescription      *NarrativeContent `json:"aiDescription"`
}

type AgriIndustryPayload struct {
	Species                    string            `json:"species"`
	HealthCondition            string            `json:"healthCondition"`
	SoilFertilitySuggestions   string            `json:"soilFertilitySuggestions"`
	NutrientDeficiencyAnalysis string            `json:"nutrientDeficiencyAnalysis"`
	RealTimeSensor             *SensorReading    `json:"realTimeSensor"`
	PlantInformation           *PlantInfo        `json:"plantInformation"`
	QualityIndex               float64           `json:"qualityIndex"`
	AIDescription              *NarrativeContent `json:"aiDescription"`
}

type PharmaPayload struct {
	MedicinalUses    string            `json:"medicinalUses"`
	NutritionalValue string            `json:"nutritionalValue"`
	HealthPercentage float64           `json:"healthPercentage"`
	ToxicityRisk     string            `json:"toxicityRisk"`
	Curable          bool              `json:"curable"`
	Disadvantages    string            `json:"disadvantages"`
	Severity         string            `json:"severity"`
	AIDescription    *NarrativeContent `json:"aiDescription"`
}

// AdminPayload is the unshaped passthrough used for ADMIN and any unmapped
// role: the raw inference fields plus whatever reference data resolved.
type AdminPayload struct {
	Species      string         `json:"species"`
	Disease      string         `json:"disease"`
	Confidence   float64        `json:"confidence"`
	Severity     string         `json:"severity"`
	QualityIndex float64        `json:"quality_index"`
	PlantInfo    *PlantInfo     `json:"plantInfo"`
	DiseaseInfo  *DiseaseInfo   `json:"diseaseInfo"`
	LatestSensor *SensorReading `json:"latestSensor"`
}
