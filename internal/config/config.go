// Package config loads the herbarium configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/virtual-herbarium/internal/logging"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

// Config is the complete herbarium configuration.
type Config struct {
	Dataset   DatasetConfig            `yaml:"dataset"`
	Layout    LayoutConfig             `yaml:"layout"`
	Animation AnimationConfig          `yaml:"animation"`
	Window    WindowConfig             `yaml:"window"`
	Server    ServerConfig             `yaml:"server"`
	Log       LogConfig                `yaml:"log"`
	Variants  map[string]VariantConfig `yaml:"variants"`
}

// DatasetConfig says where plant records come from. URL wins over Path.
type DatasetConfig struct {
	URL string `yaml:"url"`
	// Path is a local JSON file, used when URL is empty.
	Path string `yaml:"path"`
	// Watch reloads Path when it changes on disk.
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
	// Timeout bounds a single HTTP fetch.
	Timeout time.Duration `yaml:"timeout"`
}

type LayoutConfig struct {
	Radius float64 `yaml:"radius"`
	// Step is the angular increment in radians between consecutive plants.
	Step float64 `yaml:"step"`
}

type AnimationConfig struct {
	Step float64 `yaml:"step"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
	// Font is an optional TTF used for all tour text.
	Font string `yaml:"font"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// VariantConfig adds or overrides one entry of the variant table.
type VariantConfig struct {
	StemColor string  `yaml:"stem_color"`
	LeafColor string  `yaml:"leaf_color"`
	Height    float64 `yaml:"height"`
	LeafSize  float64 `yaml:"leaf_size"`
	LeafCount int     `yaml:"leaf_count"`
	Spread    float64 `yaml:"spread"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:     "assets/plants.json",
			Debounce: 300 * time.Millisecond,
			Timeout:  10 * time.Second,
		},
		Layout: LayoutConfig{
			Radius: scene.DefaultRadius,
			Step:   scene.DefaultAngleStep,
		},
		Animation: AnimationConfig{Step: scene.DefaultStep},
		Window:    WindowConfig{Width: 1280, Height: 800, FPS: 60},
		Server:    ServerConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Dataset.URL == "" && c.Dataset.Path == "" {
		return errors.New("dataset.url or dataset.path is required")
	}
	if c.Dataset.Watch && c.Dataset.URL != "" {
		return errors.New("dataset.watch only applies to dataset.path")
	}
	if c.Dataset.Debounce < 0 {
		return errors.New("dataset.debounce must not be negative")
	}
	if c.Layout.Radius <= 0 {
		return errors.New("layout.radius must be positive")
	}
	if c.Animation.Step <= 0 {
		return errors.New("animation.step must be positive")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window.width and window.height must be positive")
	}
	if c.Window.FPS <= 0 {
		return errors.New("window.fps must be positive")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := c.VariantTable(); err != nil {
		return err
	}
	return nil
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults when path is empty and the validated file
// otherwise.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DatasetLocation is the URL or path handed to the loader.
func (c *Config) DatasetLocation() string {
	if c.Dataset.URL != "" {
		return c.Dataset.URL
	}
	return c.Dataset.Path
}

func (c *Config) SceneLayout() scene.Layout {
	return scene.Layout{Radius: c.Layout.Radius, Step: c.Layout.Step}
}

// VariantTable merges the configured variants over the built-in table. Keys
// are normalised the same way record ids are.
func (c *Config) VariantTable() (*variant.Table, error) {
	if len(c.Variants) == 0 {
		return variant.DefaultTable(), nil
	}
	extra := make(map[string]variant.Params, len(c.Variants))
	for key, vc := range c.Variants {
		p, err := vc.params()
		if err != nil {
			return nil, fmt.Errorf("variants.%s: %w", key, err)
		}
		extra[variant.TypeKey(key)] = p
	}
	return variant.NewTable(extra)
}

func (vc VariantConfig) params() (variant.Params, error) {
	stem, err := variant.ParseHex(vc.StemColor)
	if err != nil {
		return variant.Params{}, fmt.Errorf("stem_color: %w", err)
	}
	leaf, err := variant.ParseHex(vc.LeafColor)
	if err != nil {
		return variant.Params{}, fmt.Errorf("leaf_color: %w", err)
	}
	return variant.Params{
		StemColor: stem,
		LeafColor: leaf,
		Height:    vc.Height,
		LeafSize:  vc.LeafSize,
		LeafCount: vc.LeafCount,
		Spread:    vc.Spread,
	}, nil
}
