package app

import (
	"strings"
	"time"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/utils"
)

type Config struct {
	Port             string
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	InferenceURL     string
	GeminiAPIKey     string
	GeminiModel      string
	UploadsDir       string
	AllowedOrigins   []string
	SeedOnStart      bool
	AuthRateRPS      int
	AuthRateBurst    int
}

func LoadConfig(log *logger.Logger) Config {
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 900, log)
	refreshTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

	var origins []string
	if raw := utils.GetEnv("ALLOWED_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:             utils.GetEnv("PORT", "8080", log),
		JWTAccessSecret:  utils.GetEnv("JWT_ACCESS_SECRET", "defaultaccesssecret", log),
		JWTRefreshSecret: utils.GetEnv("JWT_REFRESH_SECRET", "defaultrefreshsecret", log),
		AccessTokenTTL:   time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL:  time.Duration(refreshTTLSeconds) * time.Second,
		InferenceURL:     utils.GetEnv("INFERENCE_URL", "http://localhost:9090/predict", log),
		GeminiAPIKey:     utils.GetEnv("GEMINI_API_KEY", "", log),
		GeminiModel:      utils.GetEnv("GEMINI_MODEL", "gemini-1.5-flash", log),
		UploadsDir:       utils.GetEnv("UPLOADS_DIR", "uploads", log),
		AllowedOrigins:   origins,
		SeedOnStart:      utils.GetEnvAsBool("SEED_ON_START", false, log),
		AuthRateRPS:      utils.GetEnvAsInt("AUTH_RATE_RPS", 5, log),
		AuthRateBurst:    utils.GetEnvAsInt("AUTH_RATE_BURST", 10, log),
	}
}
