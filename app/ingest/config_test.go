package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourceConfigDefaults(t *testing.T) {
	config, err := LoadSourceConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.BaseURL != "http://rutor.info" {
		t.Errorf("Unexpected default base URL: %s", config.BaseURL)
	}
	if config.Pages != 10 {
		t.Errorf("Expected 10 pages, got %d", config.Pages)
	}
	if config.LookbackDays != 2 {
		t.Errorf("Expected 2 lookback days, got %d", config.LookbackDays)
	}
	if config.Timeout != 3 {
		t.Errorf("Expected 3s timeout, got %d", config.Timeout)
	}
}

func TestLoadSourceConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.yml")
	data := `base_url: http://mirror.example
pages: 3
lookback_days: 14
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadSourceConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.BaseURL != "http://mirror.example" {
		t.Errorf("Unexpected base URL: %s", config.BaseURL)
	}
	if config.Pages != 3 {
		t.Errorf("Expected 3 pages, got %d", config.Pages)
	}
	if config.LookbackDays != 14 {
		t.Errorf("Expected 14 lookback days, got %d", config.LookbackDays)
	}
	// Unset keys keep their defaults
	if config.Timeout != 3 {
		t.Errorf("Expected default timeout, got %d", config.Timeout)
	}
}

func TestLoadSourceConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.yml")
	if err := os.WriteFile(path, []byte("pages: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSourceConfig(path); err == nil {
		t.Error("Expected error for negative page count")
	}
}

func TestLoadSourceConfigMissingFile(t *testing.T) {
	if _, err := LoadSourceConfig("/nonexistent/source.yml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
