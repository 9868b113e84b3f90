package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "FORMULARY_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env %s, got %s", EnvDevelopment, cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.FormularyFile != "" {
		t.Errorf("Expected no formulary file by default, got %s", cfg.FormularyFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("FORMULARY_FILE", "/etc/pediadose/formulary.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env normalized to prod, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level normalized to debug, got %s", cfg.LogLevel)
	}
	if cfg.FormularyFile != "/etc/pediadose/formulary.yaml" {
		t.Errorf("Unexpected formulary file: %s", cfg.FormularyFile)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		errPart string
	}{
		{"non-numeric port", "PORT", "abc", "PORT"},
		{"privileged port", "PORT", "80", "privileged"},
		{"port out of range", "PORT", "70000", "PORT"},
		{"bad address", "ADDRESS", "not-an-ip", "ADDRESS"},
		{"unknown env", "ENV", "qa", "ENV"},
		{"unknown log level", "LOG_LEVEL", "trace", "LOG_LEVEL"},
		{"retention too long", "LOG_RETENTION_WEEKS", "100", "LOG_RETENTION_WEEKS"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "1024", "MAX_LOG_FILE_SIZE"},
		{"body limit too large", "MAX_REQUEST_BODY", "209715200", "MAX_REQUEST_BODY"},
		{"formulary not yaml", "FORMULARY_FILE", "/etc/formulary.json", "FORMULARY_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected %s=%s to fail validation", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error to mention %s, got %v", tt.errPart, err)
			}
		})
	}
}

func TestValidateFormularyFile(t *testing.T) {
	for _, path := range []string{"", "formulary.yaml", "formulary.yml", "/abs/path/Formulary.YAML"} {
		if err := validateFormularyFile(path); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", path, err)
		}
	}
	for _, path := range []string{"formulary.json", "formulary", "formulary.yaml.bak"} {
		if err := validateFormularyFile(path); err == nil {
			t.Errorf("Expected %q to be rejected", path)
		}
	}
}
