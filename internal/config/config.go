package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Panel layout (bottom-right corner)
	PanelMargin      = 20
	PanelGap         = 8
	PanelPaddingX    = 16
	PanelPaddingY    = 12
	PanelFontSize    = 13
	PanelShadowWidth = 6

	// Trail parameters
	LinkDistance     = 150.0
	LinkWidth        = 1.0
	AlphaStep        = 0.015
	Jitter           = 0.7
	GlowRadius       = 12.0
	ParticleInterval = 80 * time.Millisecond

	// Tone parameters
	ToneSampleRate = 44100
	ToneDuration   = 60 * time.Millisecond
	ToneVolume     = 0.25
)

const (
	VariantSymbols = "symbols"
	VariantDots    = "dots"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable settings. Zero fields in a loaded file keep
// their default values.
type Config struct {
	Variant      string        `json:"variant"`
	Interval     time.Duration `json:"-"`
	IntervalMS   int           `json:"interval_ms"`
	LinkDistance float64       `json:"link_distance"`
	AlphaStep    float64       `json:"alpha_step"`
	Jitter       float64       `json:"jitter"`
	Glyphs       []string      `json:"glyphs"`
	Sound        bool          `json:"sound"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Seed         int64         `json:"seed"`

	intervalSet bool
}

// Default returns the symbol-variant settings of the original trail.
func Default() Config {
	return Config{
		Variant:      VariantSymbols,
		Interval:     ParticleInterval,
		IntervalMS:   int(ParticleInterval / time.Millisecond),
		LinkDistance: LinkDistance,
		AlphaStep:    AlphaStep,
		Jitter:       Jitter,
		Glyphs:       DefaultGlyphs(),
		Width:        WindowWidth,
		Height:       WindowHeight,
	}
}

// DefaultGlyphs returns the coding symbols used by the symbol variant.
func DefaultGlyphs() []string {
	return []string{"{", "}", ";", "()", "[]", "if", "else", "int", "str", "var", "==", "!=", "=>"}
}

// Load reads a JSON config file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// A variant switch also switches the interval default unless the file sets one.
	var raw struct {
		Variant    string `json:"variant"`
		IntervalMS *int   `json:"interval_ms"`
	}
	if err := json.Unmarshal(file, &raw); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if raw.Variant != "" {
		cfg = cfg.WithVariant(raw.Variant)
	}
	if err := json.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Interval = time.Duration(cfg.IntervalMS) * time.Millisecond
	cfg.intervalSet = raw.IntervalMS != nil

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Variant != VariantSymbols && c.Variant != VariantDots:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	case c.Interval < 0:
		return fmt.Errorf("%w: negative interval %v", ErrInvalidConfig, c.Interval)
	case c.LinkDistance <= 0:
		return fmt.Errorf("%w: link distance must be positive, got %v", ErrInvalidConfig, c.LinkDistance)
	case c.AlphaStep <= 0 || c.AlphaStep > 1:
		return fmt.Errorf("%w: alpha step must be in (0, 1], got %v", ErrInvalidConfig, c.AlphaStep)
	case c.Jitter < 0:
		return fmt.Errorf("%w: negative jitter %v", ErrInvalidConfig, c.Jitter)
	case c.Variant == VariantSymbols && len(c.Glyphs) == 0:
		return fmt.Errorf("%w: symbol variant needs at least one glyph", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	for i, g := range c.Glyphs {
		if g == "" {
			return fmt.Errorf("%w: glyph %d is empty", ErrInvalidConfig, i)
		}
	}
	return nil
}

// WithVariant switches the variant. The interval follows the variant's
// default unless it was set explicitly in the loaded file.
func (c Config) WithVariant(variant string) Config {
	c.Variant = variant
	if c.intervalSet {
		return c
	}
	if variant == VariantDots {
		c.Interval = 0
	} else {
		c.Interval = ParticleInterval
	}
	c.IntervalMS = int(c.Interval / time.Millisecond)
	return c
}
