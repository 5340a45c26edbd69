package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:         "8081",
		DataBackend:  "file",
		StorePath:    "./data/categories.json",
		SQLiteDBPath: "./data/finboard.db",
		AMQPExchange: "finboard",
		AMQPQueue:    "keyword_events",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "nope"
	cfg.DataBackend = "redis"
	cfg.AMQPURL = "http://localhost"
	cfg.AMQPExchange = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"invalid port", "invalid data backend", "AMQP URL scheme", "exchange name"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %q in %q", want, msg)
		}
	}
}

func TestValidateFileBackendNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.StorePath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty store path")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_BACKEND", "")
	cfg := Load()
	if cfg.Port != "8081" || cfg.DataBackend != "file" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
