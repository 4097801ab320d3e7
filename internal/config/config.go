package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	BaseURL   string
	UploadDir string
}

// Load reads .env when present (local development) and falls back to
// system environment variables otherwise (production).
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: could not load .env file:", err)
		}
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "fruitapp"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
