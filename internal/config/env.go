package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAddr          = "SPEAKSET_ADDR"
	EnvPort          = "PORT"
	EnvHash          = "SPEAKSET_HASH"
	EnvLogLevel      = "SPEAKSET_LOG_LEVEL"
	EnvLogFormat     = "SPEAKSET_LOG_FORMAT"
	EnvStaticDir     = "SPEAKSET_STATIC_DIR"
	EnvShutdownGrace = "SPEAKSET_SHUTDOWN_GRACE"
)

// LoadDotEnv loads .env from the working directory and the user config
// directory. Missing files are ignored and existing variables win.
func LoadDotEnv() {
	envFiles := []string{".env"}
	if configDir, err := os.UserConfigDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(configDir, "speakset", ".env"))
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}

// FromEnv overlays environment variables on cfg. PORT only sets the port
// and is overridden by SPEAKSET_ADDR.
func FromEnv(cfg Config) (Config, error) {
	if port, ok := os.LookupEnv(EnvPort); ok && port != "" {
		cfg.Addr = "0.0.0.0:" + port
	}
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv(EnvHash); ok && v != "" {
		cfg.Hash = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvStaticDir); ok {
		cfg.StaticDir = v
	}
	if v, ok := os.LookupEnv(EnvShutdownGrace); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvShutdownGrace, err)
		}
		cfg.ShutdownGrace = d
	}
	return cfg, nil
}
