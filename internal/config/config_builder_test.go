// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "postgres://u:p@localhost:5432/db"
	return cfg
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields leave earlier values intact.
func TestBuild_LaterSourceWins(t *testing.T) {
	override := &StructuredConfig{
		Server: Server{Port: 9090},
		App:    App{TokenIssuer: "finnovate"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig(), override)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "finnovate", cfg.App.TokenIssuer)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.Storage.DB.DSN)
}

func TestBuild_FailsValidation(t *testing.T) {
	b := newConfigBuilder().withDefaults()

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server":  map[string]any{"port": 7000, "shutdown_timeout": "5s"},
		"storage": map[string]any{"db": map[string]any{"dsn": "postgres://json"}},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/does/not/exist.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)

	jsonCfg := b.configs[2]
	assert.Equal(t, 7000, jsonCfg.Server.Port)
	assert.Equal(t, 5*time.Second, jsonCfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://json", jsonCfg.Storage.DB.DSN)
}

func TestWithJSON_MissingFileRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()
	assert.Error(t, b.err)
}

// ── full chain ────────────────────────────────────────────────────────────────

// TestBuilder_PriorityOrder verifies defaults < env < flags < JSON.
func TestBuilder_PriorityOrder(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"log_level": "warn"},
	})

	t.Setenv("PORT", "8181")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_GROUPS", "product,review,order")

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-token-issuer", "flag-issuer", "-c", path}).
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "postgres://env", cfg.Storage.DB.DSN)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, []string{"product", "review", "order"}, cfg.RateLimit.Groups)
	assert.Equal(t, RateLimitBackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, ":8181", cfg.Server.Address())
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "defaults with dsn", mutate: func(*StructuredConfig) {}},
		{
			name:    "port out of range",
			mutate:  func(c *StructuredConfig) { c.Server.Port = 70000 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero body limit",
			mutate:  func(c *StructuredConfig) { c.Server.MaxBodyBytes = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing dsn",
			mutate:  func(c *StructuredConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "zero watchdog interval",
			mutate:  func(c *StructuredConfig) { c.Storage.Watchdog.Interval = 0 },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "zero watchdog failures",
			mutate:  func(c *StructuredConfig) { c.Storage.Watchdog.Failures = 0 },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *StructuredConfig) { c.App.LogLevel = "loud" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "redis backend without url",
			mutate:  func(c *StructuredConfig) { c.RateLimit.Backend = RateLimitBackendRedis },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name: "redis backend with url",
			mutate: func(c *StructuredConfig) {
				c.RateLimit.Backend = RateLimitBackendRedis
				c.Storage.Redis.URL = "redis://localhost:6379/0"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *StructuredConfig) { c.RateLimit.Backend = "etcd" },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name:    "zero window",
			mutate:  func(c *StructuredConfig) { c.RateLimit.Window = 0 },
			wantErr: ErrInvalidRateLimitConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
