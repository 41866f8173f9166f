package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gradekit/hwcheck/internal/names"
)

const (
	DefaultBindAddr    = "127.0.0.1"
	DefaultPort        = 9410
	DefaultLogLevel    = "info"
	DefaultDBPath      = "/var/lib/hwcheckd/index.sqlite"
	DefaultMaxUploadMB = 10
	DefaultAssignment  = "hw1"
)

type Config struct {
	BindAddr          string `yaml:"bind"`
	Port              int    `yaml:"port"`
	LogLevel          string `yaml:"logLevel"`
	DBPath            string `yaml:"dbPath"`
	DBWAL             bool   `yaml:"dbWAL"`
	MaxUploadMB       int    `yaml:"maxUploadMB"`
	DefaultAssignment string `yaml:"defaultAssignment"`
}

func DefaultConfig() Config {
	return Config{
		BindAddr:          DefaultBindAddr,
		Port:              DefaultPort,
		LogLevel:          DefaultLogLevel,
		DBPath:            DefaultDBPath,
		DBWAL:             true,
		MaxUploadMB:       DefaultMaxUploadMB,
		DefaultAssignment: DefaultAssignment,
	}
}

func LoadConfig(configPath string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(configPath) != "" {
		b, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("HWCHECKD_BIND")); v != "" {
		cfg.BindAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse HWCHECKD_PORT=%q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_DB_WAL")); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("parse HWCHECKD_DB_WAL=%q: %w", v, err)
		}
		cfg.DBWAL = parsed
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_MAX_UPLOAD_MB")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse HWCHECKD_MAX_UPLOAD_MB=%q: %w", v, err)
		}
		cfg.MaxUploadMB = parsed
	}
	if v := strings.TrimSpace(os.Getenv("HWCHECKD_DEFAULT_ASSIGNMENT")); v != "" {
		cfg.DefaultAssignment = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BindAddr) == "" {
		return fmt.Errorf("bind address is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 0..65535")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB")
	}
	if name := strings.TrimSpace(c.DefaultAssignment); name != "" {
		if err := names.ValidateAssignmentName(name); err != nil {
			return fmt.Errorf("defaultAssignment: %w", err)
		}
	}
	return nil
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindAddr, c.Port)
}

func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
