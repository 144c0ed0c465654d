package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Telegram.BotToken)
	assert.Equal(t, int64(-1002392242605), cfg.Telegram.ChatID)
	assert.Equal(t, "https://fantasy.premierleague.com/api/", cfg.FPL.BaseURL)
	assert.Equal(t, int64(10_000_000), cfg.Pressure.TotalManagers)
	assert.Equal(t, int64(10_000), cfg.Pressure.OwnersFloor)
	assert.True(t, cfg.Pressure.MinOwnership.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, 5000, cfg.Pressure.MinTransfers)
	assert.Equal(t, 10, cfg.Trends.TopN)
	assert.Equal(t, "09:00", cfg.Schedule.PriceChangesAt)
	assert.Equal(t, "17:00", cfg.Schedule.PredictionsAt)
	assert.Equal(t, "10:00", cfg.Schedule.TrendsAt)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("PRESSURE_MIN_OWNERSHIP", "0.5")
	t.Setenv("SCHEDULE_TRENDS", "")
	t.Setenv("TRENDS_TOP_N", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
	assert.True(t, cfg.Pressure.MinOwnership.Equal(decimal.RequireFromString("0.5")))
	assert.Empty(t, cfg.Schedule.TrendsAt)
	assert.Equal(t, 3, cfg.Trends.TopN)
}

func TestLoad_EmptyToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()

	require.Error(t, err)
}

func TestLoad_AbsentToken(t *testing.T) {
	// Setenv registers the restore, Unsetenv makes the variable absent
	t.Setenv("TELEGRAM_BOT_TOKEN", "placeholder")
	require.NoError(t, os.Unsetenv("TELEGRAM_BOT_TOKEN"))

	_, err := Load()

	require.Error(t, err)
}
