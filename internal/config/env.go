package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env.local when APP_ENV is
// "local". Deployed environments rely on the runtime's variables.
func LoadEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		os.Setenv("APP_ENV", appEnv)
	}

	if appEnv != "local" {
		return
	}

	if err := godotenv.Load(".env.local"); err != nil {
		log.Printf("no .env.local loaded: %v; relying on system environment", err)
	}
}
