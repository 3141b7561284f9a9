package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "studytime"

type Config struct {
	Port     int
	DBPath   string
	APIKey   string
	LogLevel string
	LogFile  string
	// Base URL the MCP bridge calls, defaults to the local daemon
	ServerURL string
	// Focus timer
	StudyMinutes int
	BreakMinutes int
	AutoLogStudy bool
	// Source of the YAML layer, empty when none was read
	FilePath string
}

// fileConfig is the optional YAML layer underneath the environment.
type fileConfig struct {
	Port         int    `yaml:"port"`
	DBPath       string `yaml:"db_path"`
	APIKey       string `yaml:"api_key"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	StudyMinutes int    `yaml:"study_minutes"`
	BreakMinutes int    `yaml:"break_minutes"`
	AutoLogStudy *bool  `yaml:"auto_log_study"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Port:         8742,
		DBPath:       defaultDBPath(),
		LogLevel:     "info",
		StudyMinutes: 30,
		BreakMinutes: 10,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order. A .env file in the working directory is loaded
// first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	path := envStr("STUDYTIME_CONFIG", defaultConfigPath())
	if path != "" {
		found, err := cfg.applyFile(path)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.FilePath = path
		}
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.DBPath = envStr("STUDYTIME_DB_PATH", cfg.DBPath)
	cfg.APIKey = envStr("API_KEY", cfg.APIKey)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envStr("STUDYTIME_LOG_FILE", cfg.LogFile)
	cfg.ServerURL = envStr("STUDYTIME_SERVER_URL", fmt.Sprintf("http://localhost:%d", cfg.Port))
	cfg.StudyMinutes = envInt("STUDY_MINUTES", cfg.StudyMinutes)
	cfg.BreakMinutes = envInt("BREAK_MINUTES", cfg.BreakMinutes)
	cfg.AutoLogStudy = envBool("AUTO_LOG_STUDY", cfg.AutoLogStudy)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// StudyDuration is the configured study length. cmd/studyd and cmd/studytime
// seed the focus time setting from it on first run; afterwards the stored
// setting wins.
func (c *Config) StudyDuration() time.Duration {
	return time.Duration(c.StudyMinutes) * time.Minute
}

// BreakDuration is the break phase length.
func (c *Config) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("STUDYTIME_DB_PATH must not be empty")
	}
	if c.StudyMinutes < 1 || c.StudyMinutes > 600 {
		return fmt.Errorf("STUDY_MINUTES must be between 1 and 600, got %d", c.StudyMinutes)
	}
	if c.BreakMinutes < 1 || c.BreakMinutes > 600 {
		return fmt.Errorf("BREAK_MINUTES must be between 1 and 600, got %d", c.BreakMinutes)
	}
	return nil
}

// applyFile overlays non-zero values from a YAML file. A missing file is not
// an error.
func (c *Config) applyFile(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return false, fmt.Errorf("parse config yaml: %w", err)
	}

	if fc.Port > 0 {
		c.Port = fc.Port
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.StudyMinutes > 0 {
		c.StudyMinutes = fc.StudyMinutes
	}
	if fc.BreakMinutes > 0 {
		c.BreakMinutes = fc.BreakMinutes
	}
	if fc.AutoLogStudy != nil {
		c.AutoLogStudy = *fc.AutoLogStudy
	}
	return true, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "study.db")
	}
	return filepath.Join(dir, appName, "study.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
