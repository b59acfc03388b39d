package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/terrain"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSize      = 39
	DefaultFrameInterval = 16600 * time.Microsecond
	DefaultLayout        = "flat"
)

var (
	ErrInvalidGridSize      = errors.New("config: grid size must be positive")
	ErrInvalidCellWidth     = errors.New("config: cell width must be positive")
	ErrInvalidBorderWidth   = errors.New("config: border width must be between 1 and the cell width")
	ErrInvalidBrush         = errors.New("config: invalid brush")
	ErrInvalidFrameInterval = errors.New("config: frame interval must not be negative")
	ErrUnknownTheme         = errors.New("config: unknown theme")
	ErrInvalidColor         = errors.New("config: invalid color")
)

// Config holds the startup constants. It is read once and never written back
// while a session runs.
type Config struct {
	GridSize      int           `yaml:"grid_size"`
	CellWidth     int           `yaml:"cell_width"`
	BorderWidth   int           `yaml:"border_width"`
	Theme         string        `yaml:"theme"`
	Colors        ColorConfig   `yaml:"colors,omitempty"`
	Brush         BrushConfig   `yaml:"brush"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Incremental   bool          `yaml:"incremental"`
	Layout        string        `yaml:"layout"`
	Seed          int64         `yaml:"seed"`
}

// ColorConfig overrides individual theme colors with #rrggbb values.
type ColorConfig struct {
	Empty        string  `yaml:"empty,omitempty"`
	Solid        string  `yaml:"solid,omitempty"`
	Particulate  string  `yaml:"particulate,omitempty"`
	Outline      string  `yaml:"outline,omitempty"`
	EmitterShade float64 `yaml:"emitter_shade,omitempty"`
}

type BrushConfig struct {
	Size int `yaml:"size"`
	Step int `yaml:"step"`
	Min  int `yaml:"min"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:    DefaultGridSize,
		CellWidth:   render.DefaultCellWidth,
		BorderWidth: render.DefaultBorderWidth,
		Theme:       render.DefaultTheme.Name,
		Brush: BrushConfig{
			Size: input.DefaultBrushSize,
			Step: input.DefaultBrushStep,
			Min:  input.DefaultBrushMin,
		},
		FrameInterval: DefaultFrameInterval,
		Incremental:   true,
		Layout:        DefaultLayout,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidGridSize, c.GridSize)
	case c.CellWidth <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidCellWidth, c.CellWidth)
	case c.BorderWidth < 1 || c.BorderWidth > c.CellWidth:
		return fmt.Errorf("%w: %d", ErrInvalidBorderWidth, c.BorderWidth)
	case c.Brush.Min < 1 || c.Brush.Step < 1 || c.Brush.Size < c.Brush.Min:
		return fmt.Errorf("%w: size %d, step %d, min %d", ErrInvalidBrush, c.Brush.Size, c.Brush.Step, c.Brush.Min)
	case c.FrameInterval < 0:
		return fmt.Errorf("%w: %s", ErrInvalidFrameInterval, c.FrameInterval)
	}
	if _, ok := terrain.Get(c.LayoutName()); !ok {
		return fmt.Errorf("%w: %q", terrain.ErrUnknownLayout, c.Layout)
	}
	_, err := c.ResolveTheme()
	return err
}

// ResolveTheme looks up the named theme and applies any color overrides.
func (c *Config) ResolveTheme() (render.Theme, error) {
	t, ok := render.GetTheme(c.Theme)
	if !ok {
		return render.Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}

	overrides := []struct {
		hex string
		dst *uint32
	}{
		{c.Colors.Empty, &t.Empty},
		{c.Colors.Solid, &t.Solid},
		{c.Colors.Particulate, &t.Particulate},
		{c.Colors.Outline, &t.Outline},
	}
	for _, o := range overrides {
		if o.hex == "" {
			continue
		}
		v, err := render.ParseColor(o.hex)
		if err != nil {
			return render.Theme{}, fmt.Errorf("%w: %q", ErrInvalidColor, o.hex)
		}
		*o.dst = v
	}
	if c.Colors.EmitterShade > 0 {
		t.EmitterShade = c.Colors.EmitterShade
	}
	return t, nil
}

func (c *Config) RenderOptions() (render.Options, error) {
	t, err := c.ResolveTheme()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		CellWidth:   c.CellWidth,
		BorderWidth: c.BorderWidth,
		Theme:       t,
		Incremental: c.Incremental,
	}, nil
}

func (c *Config) NewBrush() input.Brush {
	return input.NewBrush(c.Brush.Size, c.Brush.Step, c.Brush.Min)
}

// WindowSize is the side of the square frame in pixels.
func (c *Config) WindowSize() int { return c.GridSize * c.CellWidth }

// LayoutName is the configured obstacle layout, defaulting to flat.
func (c *Config) LayoutName() string {
	if c.Layout == "" {
		return DefaultLayout
	}
	return c.Layout
}
