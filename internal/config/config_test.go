package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GO_PORT", "LOG_LEVEL", "DEV_MODE", "ANALYZER_DEFAULT_CAPITAL",
		"ANALYZER_TIMEZONE", "ANALYZER_MAX_UPLOAD_BYTES", "AWS_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 1000000.0, cfg.DefaultCapital)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, int64(20971520), cfg.MaxUploadBytes)
	assert.Equal(t, "ap-south-1", cfg.S3.Region)
	assert.Empty(t, cfg.S3.Endpoint)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "1000000", cfg.Capital().String())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("ANALYZER_DEFAULT_CAPITAL", "250000.5")
	t.Setenv("ANALYZER_TIMEZONE", "UTC")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8501, https://trades.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 250000.5, cfg.DefaultCapital)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, []string{"http://localhost:8501", "https://trades.example.com"}, cfg.CORSOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_IgnoresUnparseableNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_PORT", "eighty")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Port: 8001, DefaultCapital: 0, Timezone: "Asia/Kolkata", MaxUploadBytes: 1, CORSOrigins: []string{"*"}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "GO_PORT"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "GO_PORT"},
		{name: "negative capital", mutate: func(c *Config) { c.DefaultCapital = -1 }, wantErr: "ANALYZER_DEFAULT_CAPITAL"},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: "ANALYZER_MAX_UPLOAD_BYTES"},
		{name: "no origins", mutate: func(c *Config) { c.CORSOrigins = nil }, wantErr: "CORS_ALLOWED_ORIGINS"},
		{name: "unknown zone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "ANALYZER_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
