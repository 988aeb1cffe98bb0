package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/MeKo-Tech/textframe/internal/orientation"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	eng := engine.DefaultConfig()
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Engine: EngineConfig{
			Backend:     eng.Backend,
			Languages:   eng.Languages,
			PageSegMode: eng.PageSegMode,
		},
		Frame: FrameConfig{
			DefaultOrientation: orientation.Up.String(),
			MaxFrameMB:         20,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			MaxFPS:          0,
			Burst:           1,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"json", "text", "csv"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	validBackends := []string{engine.BackendTesseract, engine.BackendReplay}
	if !contains(validBackends, strings.ToLower(c.Engine.Backend)) {
		return fmt.Errorf("invalid engine backend: %s (must be one of: %s)", c.Engine.Backend, strings.Join(validBackends, ", "))
	}
	if strings.EqualFold(c.Engine.Backend, engine.BackendReplay) && c.Engine.ReplayFile == "" {
		return fmt.Errorf("engine.replay_file is required for the replay backend")
	}
	if c.Engine.PageSegMode < 0 || c.Engine.PageSegMode > 13 {
		return fmt.Errorf("invalid engine page segmentation mode: %d (must be between 0 and 13)", c.Engine.PageSegMode)
	}

	if _, err := c.SensorOrientation(); err != nil {
		return err
	}
	if c.Frame.MaxFrameMB <= 0 {
		return fmt.Errorf("invalid max frame size: %d (must be positive)", c.Frame.MaxFrameMB)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.MaxFPS < 0 {
		return fmt.Errorf("invalid max fps: %.2f (must not be negative)", c.Server.MaxFPS)
	}
	if c.Server.MaxFPS > 0 && c.Server.Burst <= 0 {
		return fmt.Errorf("invalid burst: %d (must be positive when max_fps is set)", c.Server.Burst)
	}

	return nil
}

// ToEngineConfig converts the config to the engine configuration.
func (c *Config) ToEngineConfig() engine.Config {
	return engine.Config{
		Backend:        c.Engine.Backend,
		Languages:      c.Engine.Languages,
		TessdataPrefix: c.Engine.TessdataPrefix,
		PageSegMode:    c.Engine.PageSegMode,
		Whitelist:      c.Engine.Whitelist,
		ReplayFile:     c.Engine.ReplayFile,
	}
}

// SensorOrientation returns the parsed default sensor orientation.
func (c *Config) SensorOrientation() (orientation.Orientation, error) {
	o, err := orientation.Parse(c.Frame.DefaultOrientation)
	if err != nil {
		return orientation.Up, fmt.Errorf("invalid frame.default_orientation: %w", err)
	}
	return o, nil
}

// UnknownOutputOrientation reports whether a requested output orientation is
// configured but not one of the known names. Such values are still sent to
// the processor, which treats them as portrait.
func (c *Config) UnknownOutputOrientation() bool {
	return c.Frame.OutputOrientation != "" && !orientation.KnownOutput(c.Frame.OutputOrientation)
}

// MaxFrameBytes returns the frame size limit in bytes.
func (c *Config) MaxFrameBytes() int64 {
	return int64(c.Frame.MaxFrameMB) << 20
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
