package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Frame sources understood by the app.
const (
	SourceCamera = "camera"
	SourceScreen = "screen"
)

// Config holds runtime configuration for capture, analysis and the viewfinder.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Capture
	Source         string `json:"source"`
	CameraDevice   int    `json:"camera_device"`
	TargetWidth    int    `json:"target_width"`
	TargetHeight   int    `json:"target_height"`
	SensorRotation int    `json:"sensor_rotation"`
	CaptureMs      int    `json:"capture_ms"`

	// Display
	DisplayID         int `json:"display_id"`
	DisplayRotation   int `json:"display_rotation"`
	OrientationPollMs int `json:"orientation_poll_ms"`

	// Analysis
	CascadePath string `json:"cascade_path"`

	// UI
	TickMs       int `json:"tick_ms"`
	PointRadius  int `json:"point_radius"`
	StatusRowsPx int `json:"status_rows_px"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		Source:            SourceCamera,
		CameraDevice:      0,
		TargetWidth:       1280,
		TargetHeight:      720,
		SensorRotation:    0,
		CaptureMs:         33,
		DisplayID:         0,
		DisplayRotation:   0,
		OrientationPollMs: 250,
		CascadePath:       "haarcascade_frontalface_default.xml",
		TickMs:            33,
		PointRadius:       8,
		StatusRowsPx:      72,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Source != SourceCamera && c.Source != SourceScreen {
		c.Source = SourceCamera
	}
	if c.CameraDevice < 0 {
		c.CameraDevice = 0
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		c.TargetWidth, c.TargetHeight = 1280, 720
	}
	if !quarterTurn(c.SensorRotation) {
		c.SensorRotation = 0
	}
	if !quarterTurn(c.DisplayRotation) {
		c.DisplayRotation = 0
	}
	if c.CaptureMs <= 0 {
		c.CaptureMs = 33
	}
	if c.OrientationPollMs < 50 {
		c.OrientationPollMs = 250
	}
	if c.TickMs < 10 {
		c.TickMs = 33
	}
	if c.PointRadius <= 0 {
		c.PointRadius = 8
	}
	if c.StatusRowsPx < 0 {
		c.StatusRowsPx = 72
	}
	if c.CascadePath == "" {
		return fmt.Errorf("config: cascade_path is required")
	}
	return nil
}

func quarterTurn(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// DefaultPath returns the per-user config file location, creating its parent directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("facecam-go", "config.json"))
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
