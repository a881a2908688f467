package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config.yaml"

// AssetsConfig points at the font and overlay files loaded once at startup.
type AssetsConfig struct {
	FontPath    string `yaml:"font_path"`
	FontFamily  string `yaml:"font_family"`
	OverlayPath string `yaml:"overlay_path"`
}

// Config is the full service configuration.
type Config struct {
	Server struct {
		Host         string        `yaml:"host"`
		Port         string        `yaml:"port"`
		Prefork      bool          `yaml:"prefork"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	Logger struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`

	Assets AssetsConfig `yaml:"assets"`

	Render struct {
		// MaxNameRunes caps the requested name before the suffix is added. 0 disables the cap.
		MaxNameRunes   int    `yaml:"max_name_runes"`
		PNGCompression string `yaml:"png_compression"`
	} `yaml:"render"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Addr returns the listen address for the Fiber app.
func (c Config) Addr() string {
	return c.Server.Host + c.Server.Port
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	var cfg Config
	cfg.Server.Port = ":5555"
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second

	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 28

	cfg.Assets.FontPath = "./Poppins-Regular.ttf"
	cfg.Assets.FontFamily = "Poppins"
	cfg.Assets.OverlayPath = "./jackal.png"

	cfg.Render.MaxNameRunes = 64
	cfg.Render.PNGCompression = "default"

	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/ops/metrics"
	return cfg
}

// Load reads the file named by CONFIG_PATH, falling back to DefaultPath.
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the YAML file at path. A missing file yields
// Defaults. Invalid values panic, since the service cannot start with them.
func LoadFrom(path string) Config {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic(fmt.Sprintf("config: parse %s: %v", path, err))
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		panic(fmt.Sprintf("config: read %s: %v", path, err))
	}

	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("FONT_PATH"); v != "" {
		cfg.Assets.FontPath = v
	}
	if v := os.Getenv("OVERLAY_PATH"); v != "" {
		cfg.Assets.OverlayPath = v
	}
	if cfg.Server.Port != "" && !strings.HasPrefix(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
}

var compressionLevels = map[string]bool{"default": true, "speed": true, "best": true, "none": true}

func validate(cfg Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port must not be empty")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if cfg.Assets.FontPath == "" || cfg.Assets.OverlayPath == "" {
		return errors.New("assets.font_path and assets.overlay_path are required")
	}
	if cfg.Assets.FontFamily == "" {
		return errors.New("assets.font_family must not be empty")
	}
	if cfg.Render.MaxNameRunes < 0 {
		return fmt.Errorf("render.max_name_runes must be >= 0, got %d", cfg.Render.MaxNameRunes)
	}
	if !compressionLevels[strings.ToLower(cfg.Render.PNGCompression)] {
		return fmt.Errorf("render.png_compression %q is not one of default, speed, best, none", cfg.Render.PNGCompression)
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path %q must start with /", cfg.Metrics.Path)
	}
	return nil
}
