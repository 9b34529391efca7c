package repos

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/types"
)

func newDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repos.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	stmts := []string{
		`CREATE TABLE "user" (
			id text PRIMARY KEY,
			email text NOT NULL UNIQUE,
			name text NOT NULL,
			google_id text,
			role text NOT NULL DEFAULT 'FARMER',
			refresh_token text,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE plant_info (
			id text PRIMARY KEY,
			species text NOT NULL UNIQUE,
			medicinal_value text NOT NULL DEFAULT '',
			nutritional_info text NOT NULL DEFAULT '',
			avg_market_price real NOT NULL DEFAULT 0,
			cures text NOT NULL DEFAULT '',
			recommended_soil text,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE disease_info (
			id text PRIMARY KEY,
			name text NOT NULL UNIQUE,
			cure_steps text NOT NULL DEFAULT '',
			vulnerability_score integer NOT NULL DEFAULT 50,
			toxicity_risk text NOT NULL DEFAULT 'LOW',
			curable boolean NOT NULL DEFAULT true,
			disadvantages text,
			plant_id text,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE market_price (
			id text PRIMARY KEY,
			plant_id text NOT NULL,
			region text NOT NULL,
			price real NOT NULL,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (plant_id, region)
		)`,
		`CREATE TABLE sensor_reading (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			ph real NOT NULL,
			ec real NOT NULL,
			moisture real NOT NULL,
			temperature real NOT NULL,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE prediction (
			id text PRIMARY KEY,
			user_id text NOT NULL,
			species text NOT NULL,
			disease text NOT NULL,
			confidence real NOT NULL,
			severity text NOT NULL,
			quality_index real NOT NULL,
			payload text,
			created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func TestUserUpsertByEmailKeepsSingleRow(t *testing.T) {
	db := newDBForTest(t)
	repo := NewUserRepo(db, logger.NewNop())
	ctx := context.Background()

	first, err := repo.UpsertByEmail(ctx, nil, &types.User{
		ID: uuid.New(), Email: "a@b.com", Name: "First", Role: types.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.UpsertByEmail(ctx, nil, &types.User{
		ID: uuid.New(), Email: "a@b.com", Name: "Second", Role: types.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("conflicting upsert created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.Name != "Second" || second.Role != types.RoleAdmin {
		t.Fatalf("updatable columns not applied: %+v", second)
	}

	var count int64
	if err := db.Model(&types.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("user rows=%d, want 1", count)
	}
}

func TestUserSetRefreshToken(t *testing.T) {
	db := newDBForTest(t)
	repo := NewUserRepo(db, logger.NewNop())
	ctx := context.Background()

	user, err := repo.UpsertByEmail(ctx, nil, &types.User{ID: uuid.New(), Email: "a@b.com", Name: "A"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	token := "refresh-token"
	if err := repo.SetRefreshToken(ctx, nil, user.ID, &token); err != nil {
		t.Fatalf("set token: %v", err)
	}
	stored, err := repo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.RefreshToken == nil || *stored.RefreshToken != token {
		t.Fatalf("refreshToken=%v, want %q", stored.RefreshToken, token)
	}

	if err := repo.SetRefreshToken(ctx, nil, user.ID, nil); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	stored, err = repo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if stored.RefreshToken != nil {
		t.Fatalf("refreshToken=%v, want nil", *stored.RefreshToken)
	}
}

func TestPlantInfoLookupSemantics(t *testing.T) {
	db := newDBForTest(t)
	repo := NewPlantInfoRepo(db, logger.NewNop())
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, nil, &types.PlantInfo{
		ID: uuid.New(), Species: "Tomato", MedicinalValue: "Lycopene", AvgMarketPrice: 2.4,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Exact-match lookup is case sensitive and misses quietly.
	plant, err := repo.FindFirstBySpecies(ctx, nil, "tomato")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if plant != nil {
		t.Fatalf("exact-match lookup should miss on case: %+v", plant)
	}

	plant, err = repo.GetBySpeciesInsensitive(ctx, nil, "tOmAtO")
	if err != nil {
		t.Fatalf("insensitive get: %v", err)
	}
	if plant == nil || plant.Species != "Tomato" {
		t.Fatalf("insensitive lookup failed: %+v", plant)
	}

	plant, err = repo.GetBySpeciesInsensitive(ctx, nil, "Cabbage")
	if err != nil {
		t.Fatalf("missing get: %v", err)
	}
	if plant != nil {
		t.Fatalf("unknown species should return nil, got %+v", plant)
	}
}

func TestPlantInfoUpsertReplacesInPlace(t *testing.T) {
	db := newDBForTest(t)
	repo := NewPlantInfoRepo(db, logger.NewNop())
	ctx := context.Background()

	first, err := repo.Upsert(ctx, nil, &types.PlantInfo{
		ID: uuid.New(), Species: "Tea", AvgMarketPrice: 1.0,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, nil, &types.PlantInfo{
		ID: uuid.New(), Species: "Tea", AvgMarketPrice: 3.5, MedicinalValue: "Antioxidants",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.AvgMarketPrice != 3.5 || second.MedicinalValue != "Antioxidants" {
		t.Fatalf("columns not replaced: %+v", second)
	}

	plants, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plants) != 1 {
		t.Fatalf("plant rows=%d, want 1", len(plants))
	}
}

func TestDiseaseInfoUpsertByName(t *testing.T) {
	db := newDBForTest(t)
	repo := NewDiseaseInfoRepo(db, logger.NewNop())
	ctx := context.Background()

	if err := repo.UpsertByName(ctx, nil, &types.DiseaseInfo{
		ID: uuid.New(), Name: "Late Blight", CureSteps: "v1", VulnerabilityScore: 50, ToxicityRisk: "LOW", Curable: true,
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertByName(ctx, nil, &types.DiseaseInfo{
		ID: uuid.New(), Name: "Late Blight", CureSteps: "v2", VulnerabilityScore: 85, ToxicityRisk: "HIGH", Curable: false,
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stored, err := repo.FindFirstByName(ctx, nil, "Late Blight")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored == nil || stored.CureSteps != "v2" || stored.VulnerabilityScore != 85 || stored.Curable {
		t.Fatalf("upsert did not update in place: %+v", stored)
	}

	var count int64
	if err := db.Model(&types.DiseaseInfo{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("disease rows=%d, want 1", count)
	}
}

func TestMarketPriceUpsertIdempotentPerRegion(t *testing.T) {
	db := newDBForTest(t)
	repo := NewMarketPriceRepo(db, logger.NewNop())
	ctx := context.Background()
	plantID := uuid.New()

	first, err := repo.Upsert(ctx, nil, &types.MarketPrice{
		ID: uuid.New(), PlantID: plantID, Region: "north", Price: 2.0,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, nil, &types.MarketPrice{
		ID: uuid.New(), PlantID: plantID, Region: "north", Price: 2.8,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.Price != 2.8 {
		t.Fatalf("price=%v, want 2.8", second.Price)
	}

	// A different region for the same plant is a distinct row.
	if _, err := repo.Upsert(ctx, nil, &types.MarketPrice{
		ID: uuid.New(), PlantID: plantID, Region: "south", Price: 1.9,
	}); err != nil {
		t.Fatalf("other region upsert: %v", err)
	}
	var count int64
	if err := db.Model(&types.MarketPrice{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("market price rows=%d, want 2", count)
	}
}

func TestSensorReadingLatestAndHistory(t *testing.T) {
	db := newDBForTest(t)
	repo := NewSensorReadingRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, nil, &types.SensorReading{
			ID: uuid.New(), UserID: userID, Ph: float64(6 + i), Moisture: 40, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("create reading %d: %v", i, err)
		}
	}
	if _, err := repo.Create(ctx, nil, &types.SensorReading{
		ID: uuid.New(), UserID: otherID, Ph: 9, CreatedAt: base.Add(time.Hour),
	}); err != nil {
		t.Fatalf("create other reading: %v", err)
	}

	latest, err := repo.LatestByUserID(ctx, nil, userID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.Ph != 8 {
		t.Fatalf("latest=%+v, want the newest reading for the owner", latest)
	}

	history, err := repo.ListByUserID(ctx, nil, userID, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history)=%d, want 2", len(history))
	}
	if history[0].Ph != 8 || history[1].Ph != 7 {
		t.Fatalf("history not newest-first: %+v", history)
	}

	missing, err := repo.LatestByUserID(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("latest for unknown user: %v", err)
	}
	if missing != nil {
		t.Fatalf("latest=%+v, want nil for user with no readings", missing)
	}
}

func TestPredictionListByUserIDNewestFirstWithLimit(t *testing.T) {
	db := newDBForTest(t)
	repo := NewPredictionRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		if _, err := repo.Create(ctx, nil, &types.Prediction{
			ID:        uuid.New(),
			UserID:    userID,
			Species:   "Tomato",
			Disease:   "Late Blight",
			Severity:  "medium",
			Payload:   datatypes.JSON(`{}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("create prediction %d: %v", i, err)
		}
	}

	listed, err := repo.ListByUserID(ctx, nil, userID, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 10 {
		t.Fatalf("len(listed)=%d, want 10", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].CreatedAt.After(listed[i-1].CreatedAt) {
			t.Fatalf("listing not newest-first at slot %d", i)
		}
	}
}
