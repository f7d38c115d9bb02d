package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	// Cron expression for the periodic low-stock scan.
	StockScanSchedule string
	// Credentials for the bootstrap developer account created on first run.
	BootstrapEmail    string
	BootstrapPassword string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("DB_NAME", "go-fieldops"),
		SkipAuth:          getEnv("SKIP_AUTH", "false") == "true",
		Environment:       getEnv("ENVIRONMENT", "development"),
		AppId:             getEnv("APP_ID", "go-fieldops"),
		StockScanSchedule: getEnv("STOCK_SCAN_SCHEDULE", "0 7 * * *"),
		BootstrapEmail:    getEnv("BOOTSTRAP_EMAIL", "dev@fieldops.local"),
		BootstrapPassword: getEnv("BOOTSTRAP_PASSWORD", "changeme"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
