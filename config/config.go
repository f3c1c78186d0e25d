package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Booking BookingConfig `yaml:"booking"`
	Stub    StubConfig    `yaml:"stub"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SessionConfig struct {
	File string `yaml:"file"`
}

type BookingConfig struct {
	RequirePassport      bool `yaml:"require_passport"`
	RedirectDelaySeconds int  `yaml:"redirect_delay_seconds"`
}

type StubConfig struct {
	Address       string `yaml:"address"`
	JWTSecret     string `yaml:"jwt_secret"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000/api/airline"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.Session.File == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Session.File = filepath.Join(home, ".skywings", "session.json")
	}
	if c.Stub.Address == "" {
		c.Stub.Address = ":5000"
	}
	if c.Stub.JWTSecret == "" {
		c.Stub.JWTSecret = "dev-only-secret"
	}
}
