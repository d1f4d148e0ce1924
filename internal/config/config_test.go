package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_EVENT_BYTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected port 8081, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected development environment, got %s", cfg.Environment)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config %+v", cfg.Logging)
	}
	if cfg.RateLimit.RequestsPerSecond != 100 || cfg.RateLimit.Burst != 200 {
		t.Errorf("Unexpected rate limit config %+v", cfg.RateLimit)
	}
	if cfg.MaxEventBytes != 1<<20 {
		t.Errorf("Expected MaxEventBytes 1MiB, got %d", cfg.MaxEventBytes)
	}
	if cfg.IsProduction() {
		t.Error("Default config should not be production")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("MAX_EVENT_BYTES", "4096")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production environment")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Unexpected logging config %+v", cfg.Logging)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 || cfg.RateLimit.Burst != 5 {
		t.Errorf("Unexpected rate limit config %+v", cfg.RateLimit)
	}
	if cfg.MaxEventBytes != 4096 {
		t.Errorf("Expected MaxEventBytes 4096, got %d", cfg.MaxEventBytes)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Logging:       LoggingConfig{Level: "info", Format: "json"},
			RateLimit:     RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
			MaxEventBytes: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"zero rps", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }, "RATE_LIMIT_RPS"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "RATE_LIMIT_BURST"},
		{"zero body", func(c *Config) { c.MaxEventBytes = 0 }, "MAX_EVENT_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %s", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.WithField("status", "301").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info entry should be filtered at warn level")
	}
	if !strings.Contains(out, `"status":"301"`) {
		t.Errorf("Expected JSON fields in output, got %s", out)
	}

	if _, err := NewLogger(LoggingConfig{Level: "loud"}, &buf); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestServerlessMode(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	if IsServerlessMode() {
		t.Error("Should not be serverless without AWS_LAMBDA_FUNCTION_NAME")
	}
	if GetDeploymentMode() != "server" {
		t.Errorf("Expected server mode, got %s", GetDeploymentMode())
	}

	cfg := &Config{Environment: "development", Logging: LoggingConfig{Format: "text"}}
	if AdaptConfigForServerless(cfg).Logging.Format != "text" {
		t.Error("Config should be untouched outside Lambda")
	}

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "us-east-1.edge-header-policy")
	t.Setenv("AWS_REGION", "us-east-1")

	sc := GetServerlessConfig()
	if !sc.IsLambda || sc.FunctionName != "us-east-1.edge-header-policy" || sc.Region != "us-east-1" {
		t.Errorf("Unexpected serverless config %+v", sc)
	}

	adapted := AdaptConfigForServerless(cfg)
	if adapted.Logging.Format != "json" || adapted.Logging.Level != "info" || !adapted.IsProduction() {
		t.Errorf("Unexpected adapted config %+v", adapted)
	}
}
