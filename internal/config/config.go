// Package config provides configuration management for gitobj.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultConfigDir  = ".config/gitobj"
	DefaultConfigFile = "config.yaml"

	defaultBinary         = "git"
	defaultTimeoutSeconds = 120
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
)

// shaHexLength is pinned to the current object-identifier contract. A
// longer-digest git is a new contract version, not a config tweak, so the
// validator rejects anything else.
const shaHexLength = 40

// Sentinel errors for configuration operations.
var (
	ErrInvalidKey = errors.New("invalid configuration key")
)

// validKeys is built once from Config struct reflection.
var validKeys = buildValidKeys()

// validate is the shared validator instance.
var validate = validator.New()

// Config represents the full gitobj configuration.
type Config struct {
	Git GitConfig `mapstructure:"git" validate:"required"`
	Log LogConfig `mapstructure:"log"`
}

// GitConfig controls how the underlying git binary is invoked.
type GitConfig struct {
	Binary         string `mapstructure:"binary" yaml:"binary" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=1,lte=3600"`
	HashLength     int    `mapstructure:"hash_length" yaml:"hash_length" validate:"eq=40"`
}

// Timeout returns the per-command execution budget.
func (g GitConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// LogConfig controls structured log output.
type LogConfig struct {
	// Verbosity: 0 errors only, 1 info, 2 debug.
	Verbosity int `mapstructure:"verbosity" yaml:"verbosity" validate:"gte=0,lte=2"`

	// File enables rotating file output when non-empty.
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
}

// Validate checks the configuration for errors using struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Binary:         defaultBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
			HashLength:     shaHexLength,
		},
		Log: LogConfig{
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// DefaultYAML renders the built-in configuration as a starter config file.
func DefaultYAML() ([]byte, error) {
	out, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}
	return out, nil
}

// Loader provides configuration loading and saving.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a loader for the default per-user config location.
func NewLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return NewLoaderAt(filepath.Join(home, DefaultConfigDir, DefaultConfigFile)), nil
}

// NewLoaderAt creates a loader for an explicit config file path.
func NewLoaderAt(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Environment variable binding
	v.SetEnvPrefix("GITOBJ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// We intentionally ignore errors here as BindEnv only fails if called with zero arguments.
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("git.binary", "GITOBJ_GIT_BINARY")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("git.timeout_seconds", "GITOBJ_GIT_TIMEOUT_SECONDS")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("log.verbosity", "GITOBJ_LOG_VERBOSITY")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("log.file", "GITOBJ_LOG_FILE")

	l := &Loader{v: v, path: path}
	l.setDefaults()
	return l
}

// setDefaults sets all default configuration values using Viper.
func (l *Loader) setDefaults() {
	def := Default()
	l.v.SetDefault("git.binary", def.Git.Binary)
	l.v.SetDefault("git.timeout_seconds", def.Git.TimeoutSeconds)
	l.v.SetDefault("git.hash_length", def.Git.HashLength)
	l.v.SetDefault("log.verbosity", def.Log.Verbosity)
	l.v.SetDefault("log.file", def.Log.File)
	l.v.SetDefault("log.max_size_mb", def.Log.MaxSizeMB)
	l.v.SetDefault("log.max_backups", def.Log.MaxBackups)
}

// Load reads the configuration file, creating defaults if it doesn't exist,
// and validates the result.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		if err := l.createDefault(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Get returns a configuration value by dot-notation key.
func (l *Loader) Get(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return l.v.Get(key), nil
}

// Set sets a configuration value by dot-notation key and persists it.
func (l *Loader) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	l.v.Set(key, value)
	return l.v.WriteConfig()
}

// createDefault writes the default configuration file.
func (l *Loader) createDefault() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	out, err := DefaultYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(l.path, out, 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// ValidateKey checks if a key is a valid configuration key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if validKeys[key] {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// buildValidKeys builds the set of valid keys from Config struct using reflection.
func buildValidKeys() map[string]bool {
	keys := make(map[string]bool)
	addKeysFromType(reflect.TypeOf(Config{}), "", keys)
	return keys
}

// addKeysFromType recursively adds keys from a struct type.
func addKeysFromType(t reflect.Type, prefix string, keys map[string]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		keys[key] = true

		if field.Type.Kind() == reflect.Struct {
			addKeysFromType(field.Type, key, keys)
		}
	}
}
