package config

import (
	"encoding/json"
	"errors"
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

// validTestConfig returns a config that passes validation on its own.
func validTestConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			IDPrefix:      "USER",
			IDWidth:       4,
			AllocRetries:  5,
			RatePerUnit:   7.5,
			TokenSignKey:  "secret",
			TokenIssuer:   "billkeeper",
			TokenDuration: time.Hour,
		},
		Storage: Storage{DB: DB{Driver: "pgx", DSN: "postgres://localhost/billkeeper"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "boom")
}

// TestBuild_FirstSourceWins verifies mergo merge semantics: a field set by an
// earlier source is not overwritten by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	first := validTestConfig()
	first.App.IDPrefix = "CUST"
	second := validTestConfig()
	second.App.IDPrefix = "USER"
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "CUST", cfg.App.IDPrefix)
}

// TestBuild_DefaultsFillGaps verifies that withDefaults supplies values for
// fields no other source set, without overriding explicit settings.
func TestBuild_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			IDWidth:      6,
			TokenSignKey: "secret",
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/billkeeper"}},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// explicit settings survive
	assert.Equal(t, 6, cfg.App.IDWidth)
	assert.Equal(t, "postgres://localhost/billkeeper", cfg.Storage.DB.DSN)

	// gaps are filled from defaults
	assert.Equal(t, DefaultIDPrefix, cfg.App.IDPrefix)
	assert.Equal(t, DefaultAllocRetries, cfg.App.AllocRetries)
	assert.Equal(t, DefaultRatePerUnit, cfg.App.RatePerUnit)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultDBDriver, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
}

// ── validation ────────────────────────────────────────────────────────────────

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "zero id width",
			mutate:  func(cfg *StructuredConfig) { cfg.App.IDWidth = 0 },
			wantErr: ErrInvalidIDConfigs,
		},
		{
			name:    "id width too large",
			mutate:  func(cfg *StructuredConfig) { cfg.App.IDWidth = 12 },
			wantErr: ErrInvalidIDConfigs,
		},
		{
			name:    "zero retries",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AllocRetries = 0 },
			wantErr: ErrInvalidIDConfigs,
		},
		{
			name:    "non-positive rate",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RatePerUnit = 0 },
			wantErr: ErrInvalidBillingConfigs,
		},
		{
			name:    "missing token sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "missing http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			cfg := validTestConfig()
			tt.mutate(cfg)
			b.configs = append(b.configs, cfg)

			_, err := b.build()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_MergesFile verifies that a JSON file referenced by an earlier
// source is loaded and merged with lower priority.
func TestWithJSON_MergesFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"id_prefix":      "JSONPFX",
			"token_duration": "45m",
		},
	})

	b := newConfigBuilder()
	envLike := validTestConfig()
	envLike.App.IDPrefix = "" // let the JSON value through
	envLike.JSONFilePath = path
	b.configs = append(b.configs, envLike)
	b.withJSON()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "JSONPFX", cfg.App.IDPrefix)
	// token duration was already set by the earlier source, JSON must lose
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
}

// TestWithJSON_MissingFile verifies that a dangling JSON path surfaces as a
// build error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	envLike := validTestConfig()
	envLike.JSONFilePath = "/nonexistent/config.json"
	b.configs = append(b.configs, envLike)
	b.withJSON()

	_, err := b.build()
	require.Error(t, err)
}
