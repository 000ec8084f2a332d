// Package config loads settings for the speakset HTTP backend from a CUE or
// YAML file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/flarebyte/speakset-native/internal/digest"
)

// ConfigVersion is the only configVersion value accepted in config files.
const ConfigVersion = "1"

const (
	DefaultAddr          = "0.0.0.0:4173"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultShutdownGrace = 5 * time.Second
)

// Config holds the backend settings.
type Config struct {
	Addr          string        `validate:"required,hostname_port|tcp_addr"`
	Hash          string        `validate:"oneof=xxhash murmur3"`
	LogLevel      string        `validate:"oneof=debug info warn warning error"`
	LogFormat     string        `validate:"oneof=text json"`
	StaticDir     string        `validate:"omitempty,dir"`
	ShutdownGrace time.Duration `validate:"gte=0"`
	// Seed preloads the default channel with welcome messages.
	Seed bool
}

// fileConfig mirrors the on-disk layout. Pointers distinguish unset fields
// from zero values.
type fileConfig struct {
	ConfigVersion string  `json:"configVersion" yaml:"configVersion"`
	Addr          *string `json:"addr" yaml:"addr"`
	Hash          *string `json:"hash" yaml:"hash"`
	LogLevel      *string `json:"logLevel" yaml:"logLevel"`
	LogFormat     *string `json:"logFormat" yaml:"logFormat"`
	StaticDir     *string `json:"staticDir" yaml:"staticDir"`
	ShutdownGrace *string `json:"shutdownGrace" yaml:"shutdownGrace"`
	Seed          *bool   `json:"seed" yaml:"seed"`
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          DefaultAddr,
		Hash:          digest.Default,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		ShutdownGrace: DefaultShutdownGrace,
		Seed:          true,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Supported formats are .cue, .yaml and .yml; configVersion is required.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		fc, err = decodeCUE(data)
	case ".yaml", ".yml":
		fc, err = decodeYAML(data)
	default:
		return Config{}, errors.New("unsupported config format: expected .cue, .yaml or .yml")
	}
	if err != nil {
		return Config{}, err
	}

	if fc.ConfigVersion == "" {
		return Config{}, errors.New("missing required field: configVersion")
	}
	if fc.ConfigVersion != ConfigVersion {
		return Config{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", fc.ConfigVersion, ConfigVersion)
	}
	if err := fc.apply(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeCUE(data []byte) (fileConfig, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return fileConfig{}, fmt.Errorf("invalid config: %v", err)
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return fileConfig{}, err
	}
	var fc fileConfig
	if err := v.Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid config: %v", err)
	}
	return fc, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

func decodeYAML(data []byte) (fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid config: %v", err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg *Config) error {
	if fc.Addr != nil {
		cfg.Addr = *fc.Addr
	}
	if fc.Hash != nil {
		cfg.Hash = *fc.Hash
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*fc.LogLevel)
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(*fc.LogFormat)
	}
	if fc.StaticDir != nil {
		cfg.StaticDir = *fc.StaticDir
	}
	if fc.ShutdownGrace != nil {
		d, err := time.ParseDuration(*fc.ShutdownGrace)
		if err != nil {
			return fmt.Errorf("invalid value for shutdownGrace: %v", err)
		}
		cfg.ShutdownGrace = d
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
