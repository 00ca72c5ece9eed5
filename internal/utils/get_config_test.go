package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetScanConfigDefaults(t *testing.T) {
	require.NoError(t, ParseConfig([]byte("DB_DRIVER: sqlite\n")))

	cfg := GetScanConfig()
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 2*time.Second, cfg.ResetDelay)
	assert.Equal(t, 10, cfg.FPS)
	assert.Equal(t, 250, cfg.DetectionBox)
	assert.Equal(t, "last", cfg.CameraSelect)
	assert.Equal(t, 4096, cfg.MaxFrameSide)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "300000", GetConfig("SCAN_SESSION_TTL_MS"))
	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
}

func TestGetScanConfigOverrides(t *testing.T) {
	doc := `
SCAN_DEBOUNCE_MS: 150
SCAN_RESET_MS: 5000
CAMERA_FPS: 5
CAMERA_SELECT: first
CAMERA_MAX_FRAME: 1920
SCAN_SESSION_TTL_MS: 60000
JWT_SECRET: rahasia
`
	require.NoError(t, ParseConfig([]byte(doc)))

	cfg := GetScanConfig()
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 5*time.Second, cfg.ResetDelay)
	assert.Equal(t, 5, cfg.FPS)
	assert.Equal(t, "first", cfg.CameraSelect)
	assert.Equal(t, 1920, cfg.MaxFrameSide)
	assert.Equal(t, time.Minute, cfg.SessionTTL)
	assert.Equal(t, "rahasia", GetConfig("JWT_SECRET"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestParseConfigRejectsInvalidYAML(t *testing.T) {
	assert.Error(t, ParseConfig([]byte("CAMERA_FPS: [")))
}
