package starter

import (
	"fmt"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds window and runtime settings for [Run] and [NewHost].
// Zero fields are filled from [DefaultConfig] by NewHost.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`
	// Width and Height are the initial window size in device-independent pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// TPS is the number of Update calls per second.
	TPS int `toml:"tps"`
	// Resizable lets the user resize the window. The active surface is
	// refitted on every layout.
	Resizable bool `toml:"resizable"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps"`
	// Debug logs per-second frame timings at debug level.
	Debug bool `toml:"debug"`
	// ClearColor fills the window behind the surface. A CSS color name or
	// #rgb, #rrggbb, #rrggbbaa.
	ClearColor string `toml:"clear_color"`
	// TextColor is the default glyph color in text and char modes.
	TextColor string `toml:"text_color"`
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string `toml:"screenshot_dir"`
	// KeyRepeatDelay is the number of ticks a key must be held before it
	// auto-repeats; KeyRepeatInterval is the number of ticks between repeats.
	KeyRepeatDelay    int `toml:"key_repeat_delay"`
	KeyRepeatInterval int `toml:"key_repeat_interval"`
	// LogLevel is one of debug, info, warning, error, disabled.
	LogLevel string `toml:"log_level"`

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer `toml:"-"`
}

// DefaultConfig returns the settings used for any field left unset.
func DefaultConfig() Config {
	return Config{
		Title:             "starter",
		Width:             640,
		Height:            480,
		TPS:               60,
		ClearColor:        "white",
		TextColor:         "black",
		ScreenshotDir:     "screenshots",
		KeyRepeatDelay:    30,
		KeyRepeatInterval: 3,
		LogLevel:          "info",
	}
}

// ParseConfig decodes TOML over the defaults. Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return finishConfig(cfg, md)
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return finishConfig(cfg, md)
}

func finishConfig(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("config: tps %d must be positive", c.TPS)
	case c.KeyRepeatDelay < 1 || c.KeyRepeatInterval < 1:
		return fmt.Errorf("config: key repeat delay %d and interval %d must be at least 1",
			c.KeyRepeatDelay, c.KeyRepeatInterval)
	}
	if _, err := ParseColor(c.ClearColor); err != nil {
		return fmt.Errorf("config: clear_color: %w", err)
	}
	if _, err := ParseColor(c.TextColor); err != nil {
		return fmt.Errorf("config: text_color: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.TPS <= 0 {
		c.TPS = d.TPS
	}
	if c.ClearColor == "" {
		c.ClearColor = d.ClearColor
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	if c.KeyRepeatDelay <= 0 {
		c.KeyRepeatDelay = d.KeyRepeatDelay
	}
	if c.KeyRepeatInterval <= 0 {
		c.KeyRepeatInterval = d.KeyRepeatInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// mustColor parses s, falling back to fallback when s is invalid.
func mustColor(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
