package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_GENAI_URL", "http://genai.internal:9000")

	path := writeConfig(t, `
app:
  name: case-triage-workers
apis:
  genai:
    base_url: ${TEST_GENAI_URL}
triage:
  asset_link_base_url: https://portal.example.com/assets
workers:
  triage-case-email:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://genai.internal:9000", cfg.APIs.GenAI.BaseURL)
	assert.Equal(t, ProviderGenAI, cfg.APIs.GenAI.Provider)
	assert.Equal(t, 60000, cfg.APIs.GenAI.Timeout)
	assert.Equal(t, CatalogSourceFile, cfg.Triage.Catalog.Source)
	assert.Equal(t, "configs/catalog.yaml", cfg.Triage.Catalog.Path)
	assert.Equal(t, "triage-cases", cfg.Triage.Archive.Index)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "info", cfg.Logging.Level)

	wcfg := GetWorkerConfig(cfg, "triage-case-email")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 5, wcfg.MaxJobsActive)
	assert.Equal(t, 120000, wcfg.Timeout)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.APIs.GenAI.BaseURL = "http://genai"
		cfg.Triage.AssetLinkBaseURL = "https://portal"
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "camunda enabled without broker",
			mutate:  func(c *Config) { c.Camunda.Enabled = true },
			wantErr: "camunda.broker_address",
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.APIs.GenAI.Provider = ProviderOpenAI },
			wantErr: "apis.genai.api_key",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.APIs.GenAI.Provider = "bard" },
			wantErr: "apis.genai.provider",
		},
		{
			name:    "missing link base",
			mutate:  func(c *Config) { c.Triage.AssetLinkBaseURL = "" },
			wantErr: "asset_link_base_url",
		},
		{
			name:    "postgres catalog without host",
			mutate:  func(c *Config) { c.Triage.Catalog.Source = CatalogSourcePostgres },
			wantErr: "database.postgres.host",
		},
		{
			name:    "catalog cache without redis",
			mutate:  func(c *Config) { c.Triage.Catalog.CacheTTL = 60000 },
			wantErr: "database.redis.address",
		},
		{
			name:    "archive without elasticsearch",
			mutate:  func(c *Config) { c.Triage.Archive.Enabled = true },
			wantErr: "database.elasticsearch",
		},
		{
			name:    "sns without topic",
			mutate:  func(c *Config) { c.Triage.Notify.SNS.Enabled = true },
			wantErr: "topic_arn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}

func TestIsWorkerEnabled(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"triage-case-email": {Enabled: false}}}

	assert.False(t, IsWorkerEnabled(cfg, "triage-case-email"))
	assert.True(t, IsWorkerEnabled(cfg, "unlisted-worker"))
}
