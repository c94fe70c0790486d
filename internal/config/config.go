// Package config loads and watches the TOML configuration used by the
// demo applications: backend selection, viewport placement and theme
// colors. Missing files are not an error; defaults apply wherever the
// file is silent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/termframe/internal/renderer/core"
)

// BackendKind selects the output backend.
type BackendKind string

const (
	// BackendANSI writes escape sequences directly to the tty.
	BackendANSI BackendKind = "ansi"
	// BackendTcell drives a tcell screen.
	BackendTcell BackendKind = "tcell"
)

// ViewportKind selects the viewport placement.
type ViewportKind string

const (
	ViewportFullscreen ViewportKind = "fullscreen"
	ViewportInline     ViewportKind = "inline"
)

// TerminalConfig configures the terminal setup.
type TerminalConfig struct {
	// Backend selects the output path.
	Backend BackendKind `toml:"backend"`

	// Viewport selects fullscreen or inline placement.
	Viewport ViewportKind `toml:"viewport"`

	// InlineHeight is the viewport height in rows for inline placement.
	InlineHeight int `toml:"inline_height"`

	// FrameRate is the redraw rate in frames per second.
	FrameRate int `toml:"frame_rate"`
}

// ThemeConfig holds the color scheme. Colors are hex strings like
// "#rrggbb"; empty means the terminal default.
type ThemeConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Accent     string `toml:"accent"`
}

// Config is the root configuration document.
type Config struct {
	Terminal TerminalConfig `toml:"terminal"`
	Theme    ThemeConfig    `toml:"theme"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Terminal: TerminalConfig{
			Backend:      BackendANSI,
			Viewport:     ViewportInline,
			InlineHeight: 8,
			FrameRate:    30,
		},
		Theme: ThemeConfig{
			Accent: "#5fd7ff",
		},
	}
}

// Load reads the configuration file at path, applying defaults for
// anything unset. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the conventional location of the config file,
// honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "termframe", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "termframe", "config.toml")
}

// Validate checks the configuration for values no component can act on.
func (c *Config) Validate() error {
	switch c.Terminal.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("unknown backend %q", c.Terminal.Backend)
	}

	switch c.Terminal.Viewport {
	case ViewportFullscreen, ViewportInline:
	default:
		return fmt.Errorf("unknown viewport %q", c.Terminal.Viewport)
	}

	if c.Terminal.InlineHeight < 1 {
		return fmt.Errorf("inline_height must be at least 1, got %d", c.Terminal.InlineHeight)
	}
	if c.Terminal.FrameRate < 1 || c.Terminal.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240, got %d", c.Terminal.FrameRate)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"theme.foreground", c.Theme.Foreground},
		{"theme.background", c.Theme.Background},
		{"theme.accent", c.Theme.Accent},
	} {
		if field.value == "" {
			continue
		}
		if _, err := core.ColorFromHex(field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	return nil
}

// ForegroundColor resolves the theme foreground, falling back to the
// terminal default.
func (c *Config) ForegroundColor() core.Color {
	return hexOrDefault(c.Theme.Foreground)
}

// BackgroundColor resolves the theme background.
func (c *Config) BackgroundColor() core.Color {
	return hexOrDefault(c.Theme.Background)
}

// AccentColor resolves the theme accent.
func (c *Config) AccentColor() core.Color {
	return hexOrDefault(c.Theme.Accent)
}

func hexOrDefault(hex string) core.Color {
	if hex == "" {
		return core.ColorDefault
	}
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return core.ColorDefault
	}
	return c
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
