package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/does-not-exist.yaml")

	require.NoError(t, err)
	assert.Equal(t, ":8181", cfg.HTTP.Addr)
	assert.Equal(t, float64(10), cfg.OneC.RateLimit)
	assert.Equal(t, 30, cfg.OneC.Timeout)
	assert.Equal(t, "timesheet1c.db", cfg.Database.Path)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("TIMESHEET1C_ONEC_URL", "http://srv/base/odata/standard.odata")
	t.Setenv("TIMESHEET1C_ONEC_TIMEOUT", "5")
	t.Setenv("TIMESHEET1C_HTTP_ADDR", ":9090")

	cfg, err := Load("testdata/does-not-exist.yaml")

	require.NoError(t, err)
	assert.Equal(t, "http://srv/base/odata/standard.odata", cfg.OneC.URL)
	assert.Equal(t, 5, cfg.OneC.Timeout)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}
