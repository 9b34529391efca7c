package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/types"
)

var permissions = []types.Permission{
	{Key: "prediction:read", Description: "Read predictions"},
	{Key: "plant:manage", Description: "Manage plant catalog"},
	{Key: "sensor:write", Description: "Submit sensor data"},
	{Key: "admin:full", Description: "Full administrative access"},
}

var plants = []types.PlantInfo{
	{
		Species:         "Tomato",
		MedicinalValue:  "Rich in antioxidants and lycopene.",
		NutritionalInfo: "High in vitamin C, potassium, folate.",
		AvgMarketPrice:  2.5,
		Cures:           "Boost immunity, improve heart health.",
		RecommendedSoil: strPtr("Loamy soil with pH 6.0-6.8"),
	},
	{
		Species:         "Potato",
		MedicinalValue:  "Source of potassium and vitamin B6.",
		NutritionalInfo: "High in carbohydrates and fiber.",
		AvgMarketPrice:  1.2,
		Cures:           "Helps in digestion and satiety.",
		RecommendedSoil: strPtr("Well-drained sandy loam"),
	},
	{
		Species:         "Tea",
		MedicinalValue:  "Polyphenols aid in metabolism.",
		NutritionalInfo: "Contains caffeine, catechins.",
		AvgMarketPrice:  4.5,
		Cures:           "Reduces oxidative stress.",
		RecommendedSoil: strPtr("Slightly acidic soil pH 4.5-5.5"),
	},
}

type seedDisease struct {
	disease      types.DiseaseInfo
	plantSpecies string
}

var diseases = []seedDisease{
	{
		disease: types.DiseaseInfo{
			Name:               "Late Blight",
			CureSteps:          "Apply copper-based fungicides and remove infected leaves.",
			VulnerabilityScore: 85,
			ToxicityRisk:       "MEDIUM",
			Curable:            true,
			Disadvantages:      strPtr("Can wipe out yield within days."),
		},
		plantSpecies: "Potato",
	},
	{
		disease: types.DiseaseInfo{
			Name:               "Septoria Leaf Spot",
			CureSteps:          "Introduce crop rotation and use resistant cultivars.",
			VulnerabilityScore: 60,
			ToxicityRisk:       "LOW",
			Curable:            true,
			Disadvantages:      strPtr("Reduces photosynthesis drastically."),
		},
		plantSpecies: "Tomato",
	},
	{
		disease: types.DiseaseInfo{
			Name:               "Tea Red Rust",
			CureSteps:          "Optimize shade and apply sulfur fungicides.",
			VulnerabilityScore: 70,
			ToxicityRisk:       "LOW",
			Curable:            true,
			Disadvantages:      strPtr("Degrades leaf quality impacting exports."),
		},
		plantSpecies: "Tea",
	},
}

type Seeder struct {
	db          *gorm.DB
	log         *logger.Logger
	plantRepo   repos.PlantInfoRepo
	diseaseRepo repos.DiseaseInfoRepo
}

func NewSeeder(db *gorm.DB, log *logger.Logger, plantRepo repos.PlantInfoRepo, diseaseRepo repos.DiseaseInfoRepo) *Seeder {
	return &Seeder{
		db:          db,
		log:         log.With("service", "Seeder"),
		plantRepo:   plantRepo,
		diseaseRepo: diseaseRepo,
	}
}

// Run upserts the reference roles, permissions, plants and diseases. It is
// idempotent and safe to run on every boot.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := s.seedPlants(ctx); err != nil {
		return fmt.Errorf("seed plants: %w", err)
	}
	if err := s.seedDiseases(ctx); err != nil {
		return fmt.Errorf("seed diseases: %w", err)
	}
	s.log.Info("Seed data applied")
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	for _, roleName := range types.AllRoles() {
		role := types.Role{ID: uuid.New(), Name: roleName, Description: string(roleName) + " role"}
		if err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&role).Error; err != nil {
			return err
		}
		var storedRole types.Role
		if err := s.db.WithContext(ctx).Where("name = ?", roleName).First(&storedRole).Error; err != nil {
			return err
		}

		for _, perm := range permissions {
			p := types.Permission{ID: uuid.New(), Key: perm.Key, Description: perm.Description}
			if err := s.db.WithContext(ctx).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "key"}},
					DoUpdates: clause.AssignmentColumns([]string{"description"}),
				}).
				Create(&p).Error; err != nil {
				return err
			}
			var storedPerm types.Permission
			if err := s.db.WithContext(ctx).Where("key = ?", perm.Key).First(&storedPerm).Error; err != nil {
				return err
			}

			grant := roleName == types.RoleAdmin ||
				(roleName == types.RoleAgriIndustry && perm.Key == "sensor:write")
			if !grant {
				continue
			}
			rp := types.RolePermission{RoleID: storedRole.ID, PermissionID: storedPerm.ID}
			if err := s.db.WithContext(ctx).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&rp).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedPlants(ctx context.Context) error {
	for _, plant := range plants {
		p := plant
		p.ID = uuid.New()
		if _, err := s.plantRepo.Upsert(ctx, nil, &p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedDiseases(ctx context.Context) error {
	for _, sd := range diseases {
		d := sd.disease
		d.ID = uuid.New()
		plant, err := s.plantRepo.FindFirstBySpecies(ctx, nil, sd.plantSpecies)
		if err != nil {
			return err
		}
		if plant != nil {
			d.PlantID = &plant.ID
		}
		if err := s.diseaseRepo.UpsertByName(ctx, nil, &d); err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
