package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper(overrides map[string]any) *viper.Viper {
	v := newViper()
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(testViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.RoleCacheTTL)
	assert.Equal(t, "America/Santiago", cfg.BusinessTZ.String())
	assert.Equal(t, "vales.lifecycle", cfg.KafkaTopic)
	assert.True(t, cfg.IsDevelopment())
}

func TestFromViper_ProdRejectsDefaultSecret(t *testing.T) {
	_, err := FromViper(testViper(map[string]any{"APP_ENV": "production"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg, err := FromViper(testViper(map[string]any{"APP_ENV": "production", "JWT_SECRET": "s3cr3t"}))
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromViper_InvalidValues(t *testing.T) {
	_, err := FromViper(testViper(map[string]any{"JWT_ACCESS_TTL": "soon"}))
	assert.Error(t, err)

	_, err = FromViper(testViper(map[string]any{"BUSINESS_TZ": "Mars/Olympus"}))
	assert.Error(t, err)

	_, err = FromViper(testViper(map[string]any{"LOGIN_RATE_PER_MIN": 0}))
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
