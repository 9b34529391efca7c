package app

import (
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	PlantInfo     repos.PlantInfoRepo
	DiseaseInfo   repos.DiseaseInfoRepo
	MarketPrice   repos.MarketPriceRepo
	SensorReading repos.SensorReadingRepo
	Prediction    repos.PredictionRepo
	Dataset       repos.DatasetRepo
	DatasetItem   repos.DatasetItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		PlantInfo:     repos.NewPlantInfoRepo(db, log),
		DiseaseInfo:   repos.NewDiseaseInfoRepo(db, log),
		MarketPrice:   repos.NewMarketPriceRepo(db, log),
		SensorReading: repos.NewSensorReadingRepo(db, log),
		Prediction:    repos.NewPredictionRepo(db, log),
		Dataset:       repos.NewDatasetRepo(db, log),
		DatasetItem:   repos.NewDatasetItemRepo(db, log),
	}
}
