package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"api": map[string]any{
			"baseUrl":           "",
			"requestsPerSecond": 0,
		},
		"store": map[string]any{
			"driver": "memory",
			"redis": map[string]any{
				"addr": "",
			},
		},
		"notification": map[string]any{
			"historyLimit": 50,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "API_REQUESTSPERSECOND", want: "api.requestsPerSecond"},
		{envKey: "STORE_REDIS_ADDR", want: "store.redis.addr"},
		{envKey: "NOTIFICATION_HISTORYLIMIT", want: "notification.historyLimit"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultAPITimeout, cfg.API.Timeout)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 50, cfg.Notification.HistoryLimit)
	assert.Equal(t, 75.0, cfg.Checkout.DefaultShippingFee)
	assert.Equal(t, "discounts", cfg.Notification.Push.DiscountTopic)
	assert.Equal(t, 256, cfg.QRCode.Size)
}

func TestLoadWithEnv_OverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  env: test
api:
  baseUrl: http://yaml.local
  timeout: 5s
store:
  driver: sqlite
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront-test.yaml"), content, 0o600))

	t.Chdir(dir)
	t.Setenv("API_BASEURL", "http://env.local")

	cfg, err := LoadWithEnv[Config]("storefront-test")
	require.NoError(t, err)

	assert.Equal(t, "http://env.local", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}
