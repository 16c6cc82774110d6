package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// SDK / gateway
	APIBaseURL     string
	TokenURL       string
	LoginURL       string
	ClientID       string
	RefreshToken   string
	CacheGraceTime time.Duration

	// Dev server
	Port      string
	DBDriver  string
	DBPath    string
	DBDSN     string
	JWTSecret string
	RateLimit float64
	RateBurst int
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	graceSecs, _ := strconv.Atoi(getEnv("CACHE_GRACE_SECONDS", "60"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080"),
		TokenURL:       getEnv("TOKEN_URL", ""),
		LoginURL:       getEnv("LOGIN_URL", ""),
		ClientID:       getEnv("CLIENT_ID", "sms-campaign-dashboard"),
		RefreshToken:   getEnv("REFRESH_TOKEN", ""),
		CacheGraceTime: time.Duration(graceSecs) * time.Second,

		Port:      getEnv("PORT", "8080"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBPath:    getEnv("DB_PATH", "./smscampaign.db"),
		DBDSN:     getEnv("DB_DSN", ""),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
		RateLimit: rps,
		RateBurst: burst,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
