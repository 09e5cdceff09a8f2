package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalJSON_Number(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`60000000000`), &d))
	assert.Equal(t, time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestParseJSON_FullFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"id_prefix":      "USER",
			"id_width":       4,
			"alloc_retries":  5,
			"rate_per_unit":  8.0,
			"token_sign_key": "secret",
			"token_issuer":   "billkeeper",
			"token_duration": "2h",
		},
		"storage": map[string]any{
			"db": map[string]any{"driver": "pgx", "dsn": "postgres://localhost/billkeeper"},
		},
		"server": map[string]any{
			"http_address":    "localhost:9000",
			"request_timeout": "15s",
		},
		"workers": map[string]any{
			"overdue_sweep_interval": "5m",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "USER", cfg.App.IDPrefix)
	assert.Equal(t, 4, cfg.App.IDWidth)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://localhost/billkeeper", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.OverdueSweepInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
}
