package unit

import (
	"os"
	"testing"

	"github.com/imrishuroy/storefront-admin/internal/store"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Setenv("STORE_PROJECT_ID", "abc123")
	os.Unsetenv("STORE_DATASET")
	os.Unsetenv("STORE_API_VERSION")
	os.Unsetenv("STORE_ENDPOINT_OVERRIDE")

	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dataset != "production" {
		t.Fatalf("expected default dataset 'production', got %s", cfg.Dataset)
	}
	if cfg.APIVersion == "" {
		t.Fatal("expected default api version")
	}
}

func TestLoadConfig_RequiresProject(t *testing.T) {
	os.Unsetenv("STORE_PROJECT_ID")
	os.Unsetenv("STORE_ENDPOINT_OVERRIDE")

	if _, err := store.LoadConfig(); err == nil {
		t.Fatal("expected error when no project id and no endpoint override")
	}
}

func TestLoadConfig_WithEndpointOverride(t *testing.T) {
	os.Unsetenv("STORE_PROJECT_ID")
	os.Setenv("STORE_ENDPOINT_OVERRIDE", "http://localhost:3333")

	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EndpointOverride != "http://localhost:3333" {
		t.Fatalf("endpoint override mismatch, got %s", cfg.EndpointOverride)
	}
}
