package store

import (
	"fmt"
	"os"
)

// Config holds the connection settings for the hosted document store.
// It is loaded once at startup; the client is a process-wide handle.
type Config struct {
	ProjectID  string // store project identifier, becomes the host subdomain
	Dataset    string
	APIVersion string // e.g. "v2024-01-01"
	Token      string // bearer token with read/write scope

	// EndpointOverride replaces the derived live host, used for local
	// development against a store emulator.
	EndpointOverride string
}

// LoadConfig reads store settings from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		ProjectID:        os.Getenv("STORE_PROJECT_ID"),
		Dataset:          os.Getenv("STORE_DATASET"),
		APIVersion:       os.Getenv("STORE_API_VERSION"),
		Token:            os.Getenv("STORE_TOKEN"),
		EndpointOverride: os.Getenv("STORE_ENDPOINT_OVERRIDE"),
	}

	if cfg.ProjectID == "" && cfg.EndpointOverride == "" {
		return cfg, fmt.Errorf("STORE_PROJECT_ID is required")
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production" // default fallback
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v2024-01-01"
	}

	return cfg, nil
}
