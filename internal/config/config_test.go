package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 60, cfg.TokenTTLMinutes)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestHolidaysParsing(t *testing.T) {
	cfg := Config{HolidayDates: "2024-01-26=Republic Day, 2024-08-15=Independence Day,,2024-10-02"}
	holidays := cfg.Holidays()
	assert.Equal(t, "Republic Day", holidays["2024-01-26"])
	assert.Equal(t, "Independence Day", holidays["2024-08-15"])
	assert.Equal(t, "Holiday", holidays["2024-10-02"])
	assert.Len(t, holidays, 3)
}
