package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.BindAddr != DefaultBindAddr || cfg.Port != DefaultPort {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath != DefaultDBPath || !cfg.DBWAL {
		t.Fatalf("unexpected db defaults: %+v", cfg)
	}
	if cfg.MaxUploadMB != DefaultMaxUploadMB || cfg.DefaultAssignment != DefaultAssignment {
		t.Fatalf("unexpected upload defaults: %+v", cfg)
	}
	if got, want := cfg.ListenAddr(), "127.0.0.1:9410"; got != want {
		t.Fatalf("ListenAddr() = %q, want %q", got, want)
	}
	if got := cfg.MaxUploadBytes(); got != int64(DefaultMaxUploadMB)<<20 {
		t.Fatalf("MaxUploadBytes() = %d", got)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "bind: 0.0.0.0\nport: 9999\nlogLevel: debug\ndbPath: /tmp/idx.sqlite\nmaxUploadMB: 5\ndefaultAssignment: hw9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BindAddr != "0.0.0.0" || cfg.Port != 9999 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DBPath != "/tmp/idx.sqlite" || cfg.MaxUploadMB != 5 || cfg.DefaultAssignment != "hw9" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HWCHECKD_BIND", "0.0.0.0")
	t.Setenv("HWCHECKD_PORT", "9555")
	t.Setenv("HWCHECKD_LOG_LEVEL", "WARN")
	t.Setenv("HWCHECKD_DB_PATH", "/tmp/other.sqlite")
	t.Setenv("HWCHECKD_DB_WAL", "false")
	t.Setenv("HWCHECKD_MAX_UPLOAD_MB", "3")
	t.Setenv("HWCHECKD_DEFAULT_ASSIGNMENT", "hw7")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BindAddr != "0.0.0.0" || cfg.Port != 9555 || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected env config: %+v", cfg)
	}
	if cfg.DBPath != "/tmp/other.sqlite" || cfg.DBWAL || cfg.MaxUploadMB != 3 || cfg.DefaultAssignment != "hw7" {
		t.Fatalf("unexpected env config: %+v", cfg)
	}
}

func TestLoadConfigInvalidEnvValues(t *testing.T) {
	t.Setenv("HWCHECKD_PORT", "not-a-port")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected invalid port error")
	}
	t.Setenv("HWCHECKD_PORT", "")

	t.Setenv("HWCHECKD_DB_WAL", "maybe")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected invalid wal error")
	}
	t.Setenv("HWCHECKD_DB_WAL", "")

	t.Setenv("HWCHECKD_MAX_UPLOAD_MB", "lots")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected invalid upload size error")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty bind", func(c *Config) { c.BindAddr = " " }},
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero upload", func(c *Config) { c.MaxUploadMB = 0 }},
		{"bad default assignment", func(c *Config) { c.DefaultAssignment = "HW1" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
