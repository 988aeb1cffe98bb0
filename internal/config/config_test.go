package config

import (
	"testing"

	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, engine.BackendTesseract, cfg.Engine.Backend)
	assert.Equal(t, []string{"eng"}, cfg.Engine.Languages)
	assert.Equal(t, "up", cfg.Frame.DefaultOrientation)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
		{"output format", func(c *Config) { c.Output.Format = "xml" }, "invalid output format"},
		{"backend", func(c *Config) { c.Engine.Backend = "easyocr" }, "invalid engine backend"},
		{"replay without file", func(c *Config) { c.Engine.Backend = "replay" }, "replay_file is required"},
		{"page seg mode", func(c *Config) { c.Engine.PageSegMode = 14 }, "page segmentation mode"},
		{"default orientation", func(c *Config) { c.Frame.DefaultOrientation = "sideways" }, "default_orientation"},
		{"frame size", func(c *Config) { c.Frame.MaxFrameMB = 0 }, "max frame size"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"timeout", func(c *Config) { c.Server.TimeoutSec = 0 }, "invalid timeout"},
		{"negative fps", func(c *Config) { c.Server.MaxFPS = -1 }, "invalid max fps"},
		{"burst", func(c *Config) { c.Server.MaxFPS = 10; c.Server.Burst = 0 }, "invalid burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsKnownValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Backend = "Replay"
	cfg.Engine.ReplayFile = "replay.yaml"
	cfg.Frame.DefaultOrientation = "LEFT_MIRRORED"
	cfg.Frame.OutputOrientation = "Landscape-Right"
	cfg.Server.MaxFPS = 15
	cfg.Server.Burst = 3
	require.NoError(t, cfg.Validate())
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Whitelist = "0123456789"
	cfg.Engine.TessdataPrefix = "/usr/share/tessdata"
	cfg.Frame.DefaultOrientation = "right"
	cfg.Frame.MaxFrameMB = 2

	ec := cfg.ToEngineConfig()
	assert.Equal(t, "0123456789", ec.Whitelist)
	assert.Equal(t, "/usr/share/tessdata", ec.TessdataPrefix)
	assert.Equal(t, 3, ec.PageSegMode)

	sensor, err := cfg.SensorOrientation()
	require.NoError(t, err)
	assert.Equal(t, orientation.Right, sensor)
	assert.Equal(t, int64(2<<20), cfg.MaxFrameBytes())

	cfg.Frame.DefaultOrientation = "bogus"
	sensor, err = cfg.SensorOrientation()
	require.ErrorContains(t, err, "default_orientation")
	assert.Equal(t, orientation.Up, sensor)
}

func TestValidate_AcceptsUnknownOutputOrientation(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.UnknownOutputOrientation())

	cfg.Frame.OutputOrientation = "diagonal"
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.UnknownOutputOrientation())

	cfg.Frame.OutputOrientation = "PORTRAIT"
	assert.False(t, cfg.UnknownOutputOrientation())
}
