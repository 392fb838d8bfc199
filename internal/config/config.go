// Package config loads PageInk's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"PageInk/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// DragMode selects what a one-finger drag does.
type DragMode string

const (
	DragPage DragMode = "page"
	DragPan  DragMode = "pan"
)

// PanPolicy selects how pan updates move the view.
type PanPolicy string

const (
	// PanTranslation sets the offset to the translation since the drag began.
	PanTranslation PanPolicy = "translation"
	// PanVelocity adds per-event deltas, limited by MaxPanVelocity.
	PanVelocity PanPolicy = "velocity"
)

// OpenPolicy selects what happens to existing strokes when a document is opened.
type OpenPolicy string

const (
	OpenReset    OpenPolicy = "reset"
	OpenPreserve OpenPolicy = "preserve"
)

type Config struct {
	Gesture  Gesture  `toml:"gesture"`
	Document Document `toml:"document"`
	Bridge   Bridge   `toml:"bridge"`
	Log      Log      `toml:"log"`
}

type Gesture struct {
	MinZoom        float64   `toml:"min_zoom"`
	MaxZoom        float64   `toml:"max_zoom"`
	SwipeThreshold float64   `toml:"swipe_threshold"`
	DragMode       DragMode  `toml:"drag_mode"`
	PanPolicy      PanPolicy `toml:"pan_policy"`
	MaxPanVelocity float64   `toml:"max_pan_velocity"` // units per second
	DragSlop       float64   `toml:"drag_slop"`
	TapSlop        float64   `toml:"tap_slop"`
	PinchSlop      float64   `toml:"pinch_slop"` // change in finger distance
	ZoomStep       float64   `toml:"zoom_step"`  // scale factor per wheel notch
	MouseAsStylus  bool      `toml:"mouse_as_stylus"`
}

type Document struct {
	OnOpen           OpenPolicy `toml:"on_open"`
	ClampToPageCount bool       `toml:"clamp_to_page_count"`
	Watch            bool       `toml:"watch"`
}

type Bridge struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
	Name      string `toml:"name"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Gesture: Gesture{
			MinZoom:        0.5,
			MaxZoom:        2,
			SwipeThreshold: 125,
			DragMode:       DragPage,
			PanPolicy:      PanTranslation,
			MaxPanVelocity: 3000,
			DragSlop:       8,
			TapSlop:        10,
			PinchSlop:      6,
			ZoomStep:       1.1,
			MouseAsStylus:  true,
		},
		Document: Document{
			OnOpen:           OpenReset,
			ClampToPageCount: true,
			Watch:            true,
		},
		Bridge: Bridge{
			Addr:      ":8888",
			Advertise: true,
			Name:      "PageInk",
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/pageink/config.toml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "pageink", "config.toml")
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		logging.WithComponent("config").Debug("no config file, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.WithComponent("config").Warn("unknown config key", "key", key.String(), "path", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of Default.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	g := c.Gesture
	switch {
	case g.MinZoom <= 0:
		return fmt.Errorf("%w: gesture.min_zoom must be positive", ErrInvalid)
	case g.MaxZoom < g.MinZoom:
		return fmt.Errorf("%w: gesture.max_zoom %v below min_zoom %v", ErrInvalid, g.MaxZoom, g.MinZoom)
	case g.SwipeThreshold <= 0:
		return fmt.Errorf("%w: gesture.swipe_threshold must be positive", ErrInvalid)
	case g.MaxPanVelocity <= 0:
		return fmt.Errorf("%w: gesture.max_pan_velocity must be positive", ErrInvalid)
	case g.DragSlop < 0 || g.TapSlop < 0 || g.PinchSlop < 0:
		return fmt.Errorf("%w: gesture slop values must not be negative", ErrInvalid)
	case g.ZoomStep <= 1:
		return fmt.Errorf("%w: gesture.zoom_step must be greater than 1", ErrInvalid)
	}
	switch g.DragMode {
	case DragPage, DragPan:
	default:
		return fmt.Errorf("%w: unknown gesture.drag_mode %q", ErrInvalid, g.DragMode)
	}
	switch g.PanPolicy {
	case PanTranslation, PanVelocity:
	default:
		return fmt.Errorf("%w: unknown gesture.pan_policy %q", ErrInvalid, g.PanPolicy)
	}
	switch c.Document.OnOpen {
	case OpenReset, OpenPreserve:
	default:
		return fmt.Errorf("%w: unknown document.on_open %q", ErrInvalid, c.Document.OnOpen)
	}
	if c.Bridge.Enabled && c.Bridge.Addr == "" {
		return fmt.Errorf("%w: bridge.addr is required when the bridge is enabled", ErrInvalid)
	}
	return nil
}
