// Package config holds ambient runtime configuration for the emulator core:
// region selection, audio output tuning, rewind/run-ahead depth, and
// logging/debug toggles. UI-facing concerns (window geometry, key bindings,
// render backend) belong to the host collaborator and are not modeled here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Region selects the console timing model.
type Region string

const (
	RegionNTSC  Region = "NTSC"
	RegionPAL   Region = "PAL"
	RegionDendy Region = "Dendy"
)

// RamState selects the power-up/reset RAM fill strategy.
type RamState string

const (
	RamStateAllZeros RamState = "AllZeros"
	RamStateAllOnes  RamState = "AllOnes"
	RamStateRandom   RamState = "Random"
)

// AudioConfig controls sample synthesis and output rate.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float32 `json:"volume"`
}

// EmulationConfig controls core timing/state behavior.
type EmulationConfig struct {
	Region        Region   `json:"region"`
	RamInit       RamState `json:"ram_init"`
	CycleAccurate bool     `json:"cycle_accurate"`
	RunAheadDepth int      `json:"run_ahead_depth"` // 0-4 frames
	RewindStride  int      `json:"rewind_stride"`   // frames between snapshots
	RewindFrames  int      `json:"rewind_frames"`   // capacity in emulated frames
}

// DebugConfig controls ambient logging verbosity.
type DebugConfig struct {
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
	CPUTracing    bool   `json:"cpu_tracing"`
	PPUTracing    bool   `json:"ppu_tracing"`
}

// Config is the root configuration object, trimmed to the concerns the
// core itself owns.
type Config struct {
	Audio     AudioConfig     `json:"audio"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`

	configPath string
	loaded     bool
}

// New returns a Config populated with sensible defaults.
func New() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.8,
		},
		Emulation: EmulationConfig{
			Region:        RegionNTSC,
			RamInit:       RamStateAllZeros,
			CycleAccurate: true,
			RunAheadDepth: 0,
			RewindStride:  60,
			RewindFrames:  18000,
		},
		Debug: DebugConfig{
			EnableLogging: false,
			LogLevel:      "INFO",
			CPUTracing:    false,
			PPUTracing:    false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out defaults
// if the file does not yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.loaded = true
	return nil
}

// SaveToFile persists configuration as indented JSON.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() error {
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 96000 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume < 0.0 || c.Audio.Volume > 1.0 {
		c.Audio.Volume = 0.8
	}
	if c.Emulation.RunAheadDepth < 0 {
		c.Emulation.RunAheadDepth = 0
	}
	if c.Emulation.RunAheadDepth > 4 {
		c.Emulation.RunAheadDepth = 4
	}
	if c.Emulation.RewindStride <= 0 {
		c.Emulation.RewindStride = 60
	}
	if c.Emulation.RewindFrames < 0 {
		c.Emulation.RewindFrames = 0
	}
	return nil
}

// IsLoaded reports whether the configuration was loaded from an existing file.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/nescore.json"
}

// ConfigError represents a configuration validation error for a single field.
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}
