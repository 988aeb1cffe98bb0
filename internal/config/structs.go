//nolint:lll
package config

// Config represents the complete configuration for the textframe application.
// It covers every command (frame, resolve, serve) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Detection engine
	Engine EngineConfig `mapstructure:"engine" yaml:"engine" json:"engine"`

	// Frame defaults
	Frame FrameConfig `mapstructure:"frame" yaml:"frame" json:"frame"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// EngineConfig selects and tunes the detection backend.
type EngineConfig struct {
	Backend        string   `mapstructure:"backend" yaml:"backend" json:"backend"`
	Languages      []string `mapstructure:"languages" yaml:"languages" json:"languages"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix" json:"tessdata_prefix"`
	PageSegMode    int      `mapstructure:"page_seg_mode" yaml:"page_seg_mode" json:"page_seg_mode"`
	Whitelist      string   `mapstructure:"whitelist" yaml:"whitelist" json:"whitelist"`
	ReplayFile     string   `mapstructure:"replay_file" yaml:"replay_file" json:"replay_file"`
}

// FrameConfig holds per-frame defaults applied when a request omits them.
type FrameConfig struct {
	// DefaultOrientation is the sensor orientation assumed when none is given.
	DefaultOrientation string `mapstructure:"default_orientation" yaml:"default_orientation" json:"default_orientation"`
	// OutputOrientation is sent as the requested output orientation when set.
	OutputOrientation string `mapstructure:"output_orientation" yaml:"output_orientation" json:"output_orientation"`
	MaxFrameMB        int    `mapstructure:"max_frame_mb" yaml:"max_frame_mb" json:"max_frame_mb"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string  `mapstructure:"host" yaml:"host" json:"host"`
	Port            int     `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string  `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSec      int     `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxFPS          float64 `mapstructure:"max_fps" yaml:"max_fps" json:"max_fps"`
	Burst           int     `mapstructure:"burst" yaml:"burst" json:"burst"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}
