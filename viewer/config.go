package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/prism/engine/core"
)

const DefaultConfigFile = "viewer.toml"

type WindowConfig struct {
	Title   string `toml:"title"`
	X       uint32 `toml:"x"`
	Y       uint32 `toml:"y"`
	Width   uint32 `toml:"width"`
	Height  uint32 `toml:"height"`
	ShowFPS bool   `toml:"show_fps"`
}

type SceneConfig struct {
	Shape   string `toml:"shape"`
	Variant string `toml:"variant"`
	// Colours are 0xRRGGBB.
	Background  uint32  `toml:"background"`
	Colour      uint32  `toml:"colour"`
	Specular    uint32  `toml:"specular"`
	Shininess   float32 `toml:"shininess"`
	FlatShading bool    `toml:"flat_shading"`
	// Vertical field of view in degrees.
	Fov  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

type UIConfig struct {
	// Path to a .ttf file or a BMFont .fnt descriptor. Empty uses the built-in face.
	Font string `toml:"font"`
	// Point size for TrueType fonts. Bitmap fonts have a fixed size.
	FontSize  float64 `toml:"font_size"`
	BarHeight int     `toml:"bar_height"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type Config struct {
	Window WindowConfig  `toml:"window"`
	Scene  SceneConfig   `toml:"scene"`
	Spin   SpinSettings  `toml:"spin"`
	Throw  ThrowSettings `toml:"throw"`
	UI     UIConfig      `toml:"ui"`
	Log    LogConfig     `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Prism",
			X:       100,
			Y:       100,
			Width:   1280,
			Height:  720,
			ShowFPS: true,
		},
		Scene: SceneConfig{
			Shape:       ShapeCube.String(),
			Variant:     string(VariantSpin),
			Background:  0x2a2a2a,
			Colour:      0x00ff00,
			Specular:    0x444444,
			Shininess:   30,
			FlatShading: true,
			Fov:         75,
			Near:        0.1,
			Far:         1000,
		},
		Spin:  DefaultSpinSettings(),
		Throw: DefaultThrowSettings(),
		UI: UIConfig{
			FontSize:  14,
			BarHeight: 64,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogDebug("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := ParseShape(c.Scene.Shape); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseVariant(c.Scene.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size must be non-zero", ErrInvalidConfig)
	}
	if c.Scene.Fov <= 0 || c.Scene.Fov >= 180 {
		return fmt.Errorf("%w: fov must be in (0,180), got %v", ErrInvalidConfig, c.Scene.Fov)
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		return fmt.Errorf("%w: need 0 < near < far", ErrInvalidConfig)
	}
	if c.Spin.Decay <= 0 || c.Spin.Decay >= 1 {
		return fmt.Errorf("%w: spin decay must be in (0,1), got %v", ErrInvalidConfig, c.Spin.Decay)
	}
	if c.Throw.Damping <= 0 || c.Throw.Damping >= 1 {
		return fmt.Errorf("%w: throw damping must be in (0,1), got %v", ErrInvalidConfig, c.Throw.Damping)
	}
	for i, b := range c.Throw.Bounds {
		if b <= 0 {
			return fmt.Errorf("%w: throw bound %d must be positive", ErrInvalidConfig, i)
		}
	}
	if c.UI.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidConfig)
	}
	if c.UI.BarHeight <= 0 {
		return fmt.Errorf("%w: bar height must be positive", ErrInvalidConfig)
	}
	return nil
}

// ShapeValue returns the configured shape. Validate has already checked it.
func (c *Config) ShapeValue() Shape {
	s, _ := ParseShape(c.Scene.Shape)
	return s
}

func (c *Config) VariantValue() Variant {
	v, _ := ParseVariant(c.Scene.Variant)
	return v
}

func (c *Config) LogOptions() core.LogOptions {
	return core.LogOptions{
		Level:      core.ParseLogLevel(c.Log.Level),
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}
