// Package config loads the runtime configuration of the water demo from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// Config is the full runtime configuration. Every section has a default, so a file only needs
// to name the values it changes.
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Camera     CameraConfig     `toml:"camera"`
	Render     RenderConfig     `toml:"render"`
	Simulation SimulationConfig `toml:"simulation"`
	Log        LogConfig        `toml:"log"`
}

// WindowConfig configures the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// CameraConfig configures the orbit camera. Angles are in degrees.
type CameraConfig struct {
	Fov              float32 `toml:"fov"`
	Near             float32 `toml:"near"`
	Far              float32 `toml:"far"`
	Radius           float32 `toml:"radius"`
	Elevation        float32 `toml:"elevation"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	ZoomSpeed        float32 `toml:"zoom_speed"`
}

// RenderConfig configures what the scene draws.
type RenderConfig struct {
	ClearColor   [4]float32 `toml:"clear_color"`
	PointSize    float32    `toml:"point_size"`
	WaterHeight  float32    `toml:"water_height"`
	WaterSize    float32    `toml:"water_size"`
	GroundHeight float32    `toml:"ground_height"`
	SphereRadius float32    `toml:"sphere_radius"`
	SphereBands  int        `toml:"sphere_bands"`
	ShowAxes     bool       `toml:"show_axes"`
	Reflections  bool       `toml:"reflections"`
}

// SimulationConfig configures the particle system and its tick rate.
type SimulationConfig struct {
	Bodies    int     `toml:"bodies"`
	Gravity   float32 `toml:"gravity"`
	Softening float32 `toml:"softening"`
	Spread    float32 `toml:"spread"`
	Height    float32 `toml:"height"`
	Seed      uint64  `toml:"seed"`
	Workers   int     `toml:"workers"`
	TickRate  int     `toml:"tick_rate"`
	Paused    bool    `toml:"paused"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-water",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Fov:              45,
			Near:             0.1,
			Far:              200,
			Radius:           15,
			Elevation:        25,
			MouseSensitivity: 0.005,
			ZoomSpeed:        1,
		},
		Render: RenderConfig{
			ClearColor:   [4]float32{0.05, 0.05, 0.08, 1},
			PointSize:    6,
			WaterHeight:  0,
			WaterSize:    20,
			GroundHeight: -3,
			SphereRadius: 0.6,
			SphereBands:  24,
			ShowAxes:     true,
			Reflections:  true,
		},
		Simulation: SimulationConfig{
			Bodies:    256,
			Gravity:   1,
			Softening: 0.15,
			Spread:    4,
			Height:    2,
			Seed:      1,
			TickRate:  120,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults and validates the result.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid value at once.
//
// Returns:
//   - error: the joined validation errors, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera: fov %v must be in (0, 180)", c.Camera.Fov)
	check(c.Camera.Near > 0, "camera: near %v must be positive", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera: far %v must exceed near %v", c.Camera.Far, c.Camera.Near)
	check(c.Camera.Radius > 0, "camera: radius %v must be positive", c.Camera.Radius)
	check(c.Render.PointSize > 0, "render: point_size %v must be positive", c.Render.PointSize)
	check(c.Render.WaterSize > 0, "render: water_size %v must be positive", c.Render.WaterSize)
	check(c.Render.SphereRadius > 0, "render: sphere_radius %v must be positive", c.Render.SphereRadius)
	check(c.Render.SphereBands >= 3, "render: sphere_bands %d must be at least 3", c.Render.SphereBands)
	check(c.Simulation.Bodies >= 0, "simulation: bodies %d must not be negative", c.Simulation.Bodies)
	check(c.Simulation.Softening > 0, "simulation: softening %v must be positive", c.Simulation.Softening)
	check(c.Simulation.Spread > 0, "simulation: spread %v must be positive", c.Simulation.Spread)
	check(c.Simulation.Workers >= 0, "simulation: workers %d must not be negative", c.Simulation.Workers)
	check(c.Simulation.TickRate > 0, "simulation: tick_rate %d must be positive", c.Simulation.TickRate)
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, falling back to info.
//
// Returns:
//   - log.Level: the configured level
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
