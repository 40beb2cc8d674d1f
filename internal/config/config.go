// Package config loads the YAML configuration shared by the pixelscale
// binaries.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/rook-computer/pixelscale/internal/compositor"
	"github.com/rook-computer/pixelscale/internal/effects"
	"github.com/rook-computer/pixelscale/internal/framebuffer"
	"github.com/rook-computer/pixelscale/internal/render"
	"github.com/rook-computer/pixelscale/internal/web"
)

// Config represents the main configuration
type Config struct {
	Virtual VirtualConfig `yaml:"virtual"`
	Output  OutputConfig  `yaml:"output"`
	Display DisplayConfig `yaml:"display"`
	Web     WebConfig     `yaml:"web"`
}

// VirtualConfig describes the fixed-resolution virtual window
type VirtualConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// UnitsPerPixel is the world-unit density of the scene camera. The
	// compositor never reads it.
	UnitsPerPixel float64 `yaml:"units_per_pixel"`
}

// OutputConfig controls how the virtual framebuffer reaches the display
type OutputConfig struct {
	Effect     string  `yaml:"effect"`    // none, scanlines
	Intensity  float64 `yaml:"intensity"` // 0.0-1.0
	Background string  `yaml:"background"`
	Filter     string  `yaml:"filter"` // nearest, linear
}

// DisplayConfig selects the output device and frame pacing
type DisplayConfig struct {
	Device string `yaml:"device"`
	FPS    int    `yaml:"fps"`
}

// WebConfig configures the status API server
type WebConfig struct {
	Listen string `yaml:"listen"`
	Dev    bool   `yaml:"dev"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Virtual: VirtualConfig{
			Width:         render.VirtualWidth,
			Height:        render.VirtualHeight,
			UnitsPerPixel: 1,
		},
		Output: OutputConfig{
			Effect:     effects.NameNone,
			Intensity:  0.35,
			Background: "#000000",
			Filter:     framebuffer.FilterNearest.String(),
		},
		Display: DisplayConfig{
			Device: "/dev/fb0",
			FPS:    render.DefaultFPS,
		},
		Web: WebConfig{
			Listen: web.DefaultListenAddr,
		},
	}
}

// LoadConfig loads the configuration from a file. A missing file is not an
// error: the defaults are returned.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()
	if filePath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", filePath, err)
	}
	return nil
}

// Validate checks every value the binaries consume. Bad virtual dimensions
// are reported as *compositor.ConfigurationError.
func (c *Config) Validate() error {
	if _, err := compositor.NewVirtualWindow(c.Virtual.Width, c.Virtual.Height); err != nil {
		return err
	}
	if c.Virtual.UnitsPerPixel <= 0 {
		return fmt.Errorf("virtual.units_per_pixel must be positive (got %g)", c.Virtual.UnitsPerPixel)
	}
	if _, err := effects.ByName(c.Output.Effect, c.Output.Intensity); err != nil {
		return fmt.Errorf("output.effect: %w", err)
	}
	if c.Output.Intensity < 0 || c.Output.Intensity > 1 {
		return fmt.Errorf("output.intensity must be within [0,1] (got %g)", c.Output.Intensity)
	}
	if _, err := ParseColor(c.Output.Background); err != nil {
		return fmt.Errorf("output.background: %w", err)
	}
	if _, err := ParseFilter(c.Output.Filter); err != nil {
		return fmt.Errorf("output.filter: %w", err)
	}
	if c.Display.FPS < 0 {
		return fmt.Errorf("display.fps must not be negative (got %d)", c.Display.FPS)
	}
	return nil
}

// Window returns the validated virtual window.
func (c *Config) Window() (compositor.VirtualWindow, error) {
	return compositor.NewVirtualWindow(c.Virtual.Width, c.Virtual.Height)
}

// Format returns the framebuffer format described by the output section.
func (c *Config) Format() (framebuffer.Format, error) {
	format := framebuffer.DefaultFormat()
	filter, err := ParseFilter(c.Output.Filter)
	if err != nil {
		return format, err
	}
	format.Filter = filter
	return format, nil
}

// Effect resolves the configured effect; nil means none.
func (c *Config) Effect() (effects.Effect, error) {
	return effects.ByName(c.Output.Effect, c.Output.Intensity)
}

// Server returns the web server settings with the PIXELSCALE_* environment
// applied on top of the file.
func (c *Config) Server() (web.ServerConfig, error) {
	return web.ApplyEnv(web.ServerConfig{ListenAddr: c.Web.Listen, DevMode: c.Web.Dev})
}

// ParseColor accepts #rgb and #rrggbb. The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// ParseFilter maps a filter name to framebuffer.Filter. Empty means nearest.
func ParseFilter(s string) (framebuffer.Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", framebuffer.FilterNearest.String():
		return framebuffer.FilterNearest, nil
	case framebuffer.FilterLinear.String():
		return framebuffer.FilterLinear, nil
	default:
		return framebuffer.FilterNearest, fmt.Errorf("unknown filter %q", s)
	}
}

// RenderOptions assembles the frame renderer settings. The logger is left
// for the caller.
func (c *Config) RenderOptions() (render.Options, error) {
	window, err := c.Window()
	if err != nil {
		return render.Options{}, err
	}
	format, err := c.Format()
	if err != nil {
		return render.Options{}, err
	}
	effect, err := c.Effect()
	if err != nil {
		return render.Options{}, err
	}
	border, err := ParseColor(c.Output.Background)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Window: window,
		Format: format,
		Effect: effect,
		Border: border,
		FPS:    c.Display.FPS,
	}, nil
}
