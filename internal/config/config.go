// Package config loads the qrdots configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/qrdots/config.toml
// (~/.config/qrdots/config.toml when XDG_CONFIG_HOME is unset). Every key is
// optional; command-line flags override file values and pipeline defaults
// fill whatever is left.
//
//	[qr]
//	level = "high"
//
//	[layout]
//	block_size = 10
//	corner_marker_size = 7
//	center_exclusion_size = 70
//
//	[render]
//	style = "rounded"
//	formats = ["svg", "png"]
//	overlay = "~/face.png"
//	scale = 4
//
//	[render.palette]
//	foreground = "#1e3a5f"
//	background = "#fdf6e3"
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//	key_prefix = "staging:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrdots/pkg/cache"
	"github.com/matzehuels/qrdots/pkg/pipeline"
	"github.com/matzehuels/qrdots/pkg/render/styles"
)

const appName = "qrdots"

// DefaultAddr is the listen address of the preview server.
const DefaultAddr = "127.0.0.1:8080"

// Config is the decoded configuration file.
type Config struct {
	QR     QR           `toml:"qr"`
	Layout Layout       `toml:"layout"`
	Render Render       `toml:"render"`
	Cache  cache.Config `toml:"cache"`
	Server Server       `toml:"server"`
}

// QR holds encoder settings.
type QR struct {
	Level string `toml:"level"`
}

// Layout holds layout parameters. Zero values mean "use the default".
type Layout struct {
	BlockSize           float64 `toml:"block_size"`
	CornerMarkerSize    int     `toml:"corner_marker_size"`
	CenterExclusionSize float64 `toml:"center_exclusion_size"`
}

// Render holds output settings.
type Render struct {
	Style   string         `toml:"style"`
	Formats []string       `toml:"formats"`
	Overlay string         `toml:"overlay"`
	Scale   float64        `toml:"scale"`
	Margin  *float64       `toml:"margin"`
	Palette styles.Palette `toml:"palette"`
}

// Server holds preview server settings.
type Server struct {
	Addr string `toml:"addr"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields an empty Config. A missing explicit path is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Render.Overlay = expandHome(cfg.Render.Overlay)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	return &cfg, nil
}

// Options returns pipeline options seeded from the file.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Level:               c.QR.Level,
		BlockSize:           c.Layout.BlockSize,
		CornerMarkerSize:    c.Layout.CornerMarkerSize,
		CenterExclusionSize: c.Layout.CenterExclusionSize,
		Formats:             append([]string(nil), c.Render.Formats...),
		Style:               c.Render.Style,
		Foreground:          c.Render.Palette.Foreground,
		Background:          c.Render.Palette.Background,
		Overlay:             c.Render.Overlay,
		Scale:               c.Render.Scale,
		Margin:              c.Render.Margin,
	}
}

// Addr returns the configured server address or DefaultAddr.
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
