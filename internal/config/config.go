package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Brice1994/minimal-chrome-extension/internal/branding"
	"github.com/Brice1994/minimal-chrome-extension/internal/platform"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyPackageManager = "package_manager"
	KeyName           = "name"
	KeyRoot           = "root"
	KeyNodeConstraint = "node_constraint"
	KeyLogLevel       = "log_level"
)

// ErrUnknownKey is returned by Set for keys the tool does not recognize.
var ErrUnknownKey = errors.New("unknown config key")

// Settings are the resolved values a run uses.
type Settings struct {
	PackageManager string
	Name           string
	Root           string
	NodeConstraint string
	LogLevel       string
}

// Config is the layered configuration of one project directory:
// defaults, then .mce.yaml, then MCE_* environment variables, then
// explicit overrides (usually bound flags).
type Config struct {
	dir string
	v   *viper.Viper
}

// Keys returns the recognized setting keys in sorted order.
func Keys() []string {
	keys := []string{KeyPackageManager, KeyName, KeyRoot, KeyNodeConstraint, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// FilePath returns the settings file path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, branding.ConfigFile())
}

// Load initializes Viper for dir, reading the project file if it exists.
func Load(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(FilePath(abs))
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyPackageManager, "npm")
	v.SetDefault(KeyName, filepath.Base(abs))
	v.SetDefault(KeyRoot, ".")
	v.SetDefault(KeyNodeConstraint, ">= 18.0.0")
	v.SetDefault(KeyLogLevel, "info")

	// A missing project file is the common case.
	if fileExists(FilePath(abs)) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", FilePath(abs), err)
		}
	}

	return &Config{dir: abs, v: v}, nil
}

// Dir returns the absolute project directory.
func (c *Config) Dir() string { return c.dir }

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Override sets a value with the highest precedence without persisting it.
// Empty values are ignored so unset flags do not mask lower layers.
func (c *Config) Override(key, value string) {
	if value == "" {
		return
	}
	c.v.Set(key, value)
}

// Settings returns the resolved values.
func (c *Config) Settings() Settings {
	return Settings{
		PackageManager: c.Get(KeyPackageManager),
		Name:           c.Get(KeyName),
		Root:           c.Get(KeyRoot),
		NodeConstraint: c.Get(KeyNodeConstraint),
		LogLevel:       c.Get(KeyLogLevel),
	}
}

// Set writes a config key-value pair and saves the project file.
func (c *Config) Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	// Only persist what the file already holds plus the new key, so
	// defaults and environment values are not frozen into it.
	file := viper.New()
	file.SetConfigFile(FilePath(c.dir))
	file.SetConfigType(fileType)
	if fileExists(FilePath(c.dir)) {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", FilePath(c.dir), err)
		}
	}
	file.Set(key, value)

	if err := os.MkdirAll(c.dir, platform.DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", c.dir, err)
	}
	if err := file.WriteConfigAs(FilePath(c.dir)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	c.v.Set(key, value)
	return nil
}

func known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
