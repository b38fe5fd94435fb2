package Config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads .env if present. Missing files are fine in production where
// everything comes from real environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}
}

func Getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using %d", key, err, fallback)
		return fallback
	}
	return parsed
}

func GetenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
