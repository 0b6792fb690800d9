package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, ChainID: 1, RPCRps: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"port zero", Config{Port: 0, ChainID: 1, RPCRps: 10}},
		{"port too large", Config{Port: 70000, ChainID: 1, RPCRps: 10}},
		{"chain id zero", Config{Port: 8080, ChainID: 0, RPCRps: 10}},
		{"rps zero", Config{Port: 8080, ChainID: 1, RPCRps: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.ChainID != 1 {
		t.Errorf("default chain id = %d, want 1", cfg.ChainID)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DROPFORGE_PORT", "9999")
	t.Setenv("DROPFORGE_CHAIN_ID", "42161")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Port)
	}
	if cfg.ChainID != 42161 {
		t.Errorf("chain id = %d, want 42161", cfg.ChainID)
	}
}

func TestLoad_RejectsInvalidEnv(t *testing.T) {
	t.Setenv("DROPFORGE_PORT", "0")

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() = %v, want ErrInvalidConfig", err)
	}
}
