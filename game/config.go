package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"particlefield/motion"
)

// Config holds renderer configuration
type Config struct {
	// ScreenWidth is the initial window or snapshot width in pixels
	ScreenWidth int `yaml:"screen_width"`

	// ScreenHeight is the initial window or snapshot height in pixels
	ScreenHeight int `yaml:"screen_height"`

	// Particles is the fixed particle count
	Particles int `yaml:"particles"`

	// ConnectionDistance is the pixel distance under which two particles are joined by a line
	ConnectionDistance float64 `yaml:"connection_distance"`

	// OpacityDamping scales every particle's own opacity when it is filled
	OpacityDamping float64 `yaml:"opacity_damping"`

	// LineAlpha is the alpha of a connection line between coincident particles
	LineAlpha float64 `yaml:"line_alpha"`

	// LineWidth is the connection stroke width in pixels
	LineWidth float64 `yaml:"line_width"`

	// WrapMargin is how far past the top edge a particle travels before it re-enters below the bottom edge
	WrapMargin float64 `yaml:"wrap_margin"`

	// FrameRate is the tick rate of the headless loop
	FrameRate int `yaml:"frame_rate"`

	// FrameBudget is the per-frame work time above which the profiler reports a drop
	FrameBudget time.Duration `yaml:"frame_budget"`

	Meteors       int  `yaml:"meteors"`
	Decorations   bool `yaml:"decorations"`
	ReducedMotion bool `yaml:"reduced_motion"`

	// DecorEasing is the curve of the decoration loops: linear, easeIn, easeOut or easeInOut
	DecorEasing string `yaml:"decor_easing"`

	// HUDEnter is the entrance preset of the debug overlay: fadeIn, slideInLeft, slideInRight or scaleIn
	HUDEnter string `yaml:"hud_enter"`

	// Seed fixes the random source; 0 seeds from the clock
	Seed int64 `yaml:"seed"`

	Palette Palette `yaml:"palette"`
}

// Palette holds the two tint colors as #rrggbb strings
type Palette struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:        1280,
		ScreenHeight:       800,
		Particles:          60,
		ConnectionDistance: 100,
		OpacityDamping:     0.3,
		LineAlpha:          0.05,
		LineWidth:          0.3,
		WrapMargin:         10,
		FrameRate:          60,
		FrameBudget:        16 * time.Millisecond,
		Meteors:            20,
		Decorations:        true,
		DecorEasing:        "easeInOut",
		HUDEnter:           "slideInLeft",
		Palette: Palette{
			Primary:   "#3b82f6", // blue-500
			Secondary: "#8b5cf6", // violet-500
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks ranges and palette syntax.
func (c Config) Validate() error {
	var errs []error
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.ScreenWidth, c.ScreenHeight))
	}
	if c.Particles < 0 {
		errs = append(errs, fmt.Errorf("particles %d must not be negative", c.Particles))
	}
	if c.ConnectionDistance <= 0 {
		errs = append(errs, fmt.Errorf("connection_distance %g must be positive", c.ConnectionDistance))
	}
	if c.OpacityDamping < 0 || c.OpacityDamping > 1 {
		errs = append(errs, fmt.Errorf("opacity_damping %g out of [0,1]", c.OpacityDamping))
	}
	if c.LineAlpha < 0 || c.LineAlpha > 1 {
		errs = append(errs, fmt.Errorf("line_alpha %g out of [0,1]", c.LineAlpha))
	}
	if c.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("line_width %g must be positive", c.LineWidth))
	}
	if c.WrapMargin < 0 {
		errs = append(errs, fmt.Errorf("wrap_margin %g must not be negative", c.WrapMargin))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate %d must be positive", c.FrameRate))
	}
	if c.Meteors < 0 {
		errs = append(errs, fmt.Errorf("meteors %d must not be negative", c.Meteors))
	}
	if _, ok := motion.EasingByName(c.DecorEasing); !ok {
		errs = append(errs, fmt.Errorf("decor_easing %q is not a known easing", c.DecorEasing))
	}
	if _, ok := motion.PresetByName(c.HUDEnter); !ok {
		errs = append(errs, fmt.Errorf("hud_enter %q is not a known preset", c.HUDEnter))
	}
	if _, err := ParseHexColor(c.Palette.Primary); err != nil {
		errs = append(errs, fmt.Errorf("palette.primary: %w", err))
	}
	if _, err := ParseHexColor(c.Palette.Secondary); err != nil {
		errs = append(errs, fmt.Errorf("palette.secondary: %w", err))
	}
	return errors.Join(errs...)
}

// FrameInterval is the headless loop tick interval.
func (c Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Easing resolves DecorEasing, falling back to ease-in-out.
func (c Config) Easing() motion.Easing {
	if e, ok := motion.EasingByName(c.DecorEasing); ok {
		return e
	}
	return motion.EaseInOut
}

// HUDPreset resolves HUDEnter, falling back to sliding in from the left.
func (c Config) HUDPreset() motion.Preset {
	if p, ok := motion.PresetByName(c.HUDEnter); ok {
		return p
	}
	return motion.SlideInLeft()
}

// FieldConfig derives the particle field settings. The palette must already
// have passed Validate; unparsable colors fall back to the defaults.
func (c Config) FieldConfig() FieldConfig {
	def := DefaultConfig()
	primary, err := ParseHexColor(c.Palette.Primary)
	if err != nil {
		primary, _ = ParseHexColor(def.Palette.Primary)
	}
	secondary, err := ParseHexColor(c.Palette.Secondary)
	if err != nil {
		secondary, _ = ParseHexColor(def.Palette.Secondary)
	}
	return FieldConfig{
		Count:              c.Particles,
		ConnectionDistance: c.ConnectionDistance,
		OpacityDamping:     c.OpacityDamping,
		LineAlpha:          c.LineAlpha,
		LineWidth:          c.LineWidth,
		WrapMargin:         c.WrapMargin,
		Primary:            primary,
		Secondary:          secondary,
	}
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
