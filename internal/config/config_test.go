package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	return p
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_CUE(t *testing.T) {
	p := writeConfig(t, "speakset.cue", `{
  configVersion: "1"
  addr: "127.0.0.1:9000"
  hash: "murmur3"
  logLevel: "DEBUG"
  logFormat: "json"
  shutdownGrace: "2s"
  seed: false
}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Hash != "murmur3" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ShutdownGrace != 2*time.Second || cfg.Seed {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_YAMLKeepsDefaultsForUnsetFields(t *testing.T) {
	p := writeConfig(t, "speakset.yaml", "configVersion: \"1\"\naddr: \"localhost:8080\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "localhost:8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.Hash != "xxhash" || !cfg.Seed || cfg.ShutdownGrace != DefaultShutdownGrace {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unsupported format", "c.json", `{}`, "unsupported config format: expected .cue, .yaml or .yml"},
		{"cue missing version", "c.cue", "{\n  addr: \":80\"\n}\n", "missing required field: configVersion"},
		{"cue version wrong type", "c.cue", "{\n  configVersion: 1\n}\n", "invalid type for field: configVersion (expected string)"},
		{"yaml missing version", "c.yaml", "addr: \":80\"\n", "missing required field: configVersion"},
		{"unknown version", "c.yaml", "configVersion: \"2\"\n", `unsupported configVersion: "2" (supported: 1)`},
		{"bad duration", "c.yaml", "configVersion: \"1\"\nshutdownGrace: soon\n", "invalid value for shutdownGrace"},
		{"bad cue", "c.cue", "{ configVersion: ", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error\nwant: %s\n got: %s", tt.want, err.Error())
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	if err == nil || !strings.HasPrefix(err.Error(), "failed to read config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Addr = "" },
		func(c *Config) { c.Addr = "no-port" },
		func(c *Config) { c.Hash = "sha256" },
		func(c *Config) { c.LogLevel = "loud" },
		func(c *Config) { c.LogFormat = "xml" },
		func(c *Config) { c.StaticDir = filepath.Join(t.TempDir(), "missing") },
		func(c *Config) { c.ShutdownGrace = -time.Second },
	}
	for i, mutate := range bad {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, cfg)
		}
	}

	cfg := Default()
	cfg.StaticDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ListenAddresses(t *testing.T) {
	for _, addr := range []string{"0.0.0.0:4173", ":4173", "localhost:8080", "[::1]:4173", "[::]:4173", "127.0.0.1:0"} {
		cfg := Default()
		cfg.Addr = addr
		if err := cfg.Validate(); err != nil {
			t.Fatalf("addr %q: unexpected error: %v", addr, err)
		}
	}
	for _, addr := range []string{"", "no-port", "[::1]", "::1:4173:x", "host:99999"} {
		cfg := Default()
		cfg.Addr = addr
		if err := cfg.Validate(); err == nil {
			t.Fatalf("addr %q: expected validation error", addr)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPort, "5000")
	t.Setenv(EnvHash, "murmur3")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvShutdownGrace, "250ms")

	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Addr != "0.0.0.0:5000" {
		t.Fatalf("PORT not applied: %s", cfg.Addr)
	}
	if cfg.Hash != "murmur3" || cfg.LogLevel != "warn" || cfg.ShutdownGrace != 250*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv(EnvAddr, "127.0.0.1:6000")
	cfg, err = FromEnv(Default())
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:6000" {
		t.Fatalf("SPEAKSET_ADDR should win over PORT: %s", cfg.Addr)
	}
}

func TestFromEnv_BadDuration(t *testing.T) {
	t.Setenv(EnvShutdownGrace, "later")
	if _, err := FromEnv(Default()); err == nil {
		t.Fatalf("expected error")
	}
}
