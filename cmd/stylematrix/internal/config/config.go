// Package config loads the optional stylematrix.yaml and environment
// defaults for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/stylematrix/pkg/styler"
)

// FileName is the config file looked up in the working directory.
const FileName = "stylematrix.yaml"

// Environment variables read after loading .env.
const (
	EnvLogLevel = "STYLEMATRIX_LOG_LEVEL"
	EnvConfig   = "STYLEMATRIX_CONFIG"
)

// Config represents stylematrix.yaml.
type Config struct {
	// Requires is the minimum CLI version, e.g. "v0.2.0".
	Requires string            `yaml:"requires,omitempty"`
	Log      LogConfig         `yaml:"log"`
	Style    styler.Attributes `yaml:"style"`
	Serve    ServeConfig       `yaml:"serve"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ServeConfig contains settings for the serve command.
type ServeConfig struct {
	Addr          string `yaml:"addr,omitempty"`
	Dir           string `yaml:"dir,omitempty"`
	CacheMaxBytes int64  `yaml:"cacheMaxBytes,omitempty"`
	FrameRate     int    `yaml:"frameRate,omitempty"`
}

// LoadEnv loads .env from dir if present. Variables already set in the
// environment win.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadOptional reads stylematrix.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads the config file at path. A missing file returns an error
// matching os.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Requires != "" && !semver.IsValid(cfg.Requires) {
		return nil, fmt.Errorf("%s: requires must be a semantic version like v1.2.3 (got %q)", path, cfg.Requires)
	}
	return &cfg, nil
}

// Resolve loads .env and the config file. The config path is
// $STYLEMATRIX_CONFIG when set, else stylematrix.yaml in dir.
func Resolve(dir string) (*Config, error) {
	if err := LoadEnv(dir); err != nil {
		return nil, err
	}
	cfg, err := resolveFile(dir)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = os.Getenv(EnvLogLevel)
	}
	return cfg, nil
}

func resolveFile(dir string) (*Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfig))
	if path == "" {
		return LoadOptional(dir)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	// An explicitly named file must exist.
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s not found", path)
	}
	return cfg, err
}

// CheckVersion reports an error if version is older than cfg.Requires.
// Pre-release suffixes are ignored and versions that are not semver, such
// as local builds, always pass.
func (cfg *Config) CheckVersion(version string) error {
	if cfg.Requires == "" {
		return nil
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return nil
	}
	v = strings.TrimSuffix(v, semver.Prerelease(v)+semver.Build(v))
	if semver.Compare(v, cfg.Requires) < 0 {
		return fmt.Errorf("config requires stylematrix %s or newer (running %s)", cfg.Requires, version)
	}
	return nil
}
