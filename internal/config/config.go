package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the netstated daemon configuration
type Config struct {
	StateFile         string `yaml:"state_file"`
	LogLevel          string `yaml:"log_level"`
	ReconcileInterval string `yaml:"reconcile_interval"`
	DryRun            bool   `yaml:"dry_run"`

	interval time.Duration
}

const (
	defaultStateFile         = "/etc/netstate/desired.yaml"
	defaultLogLevel          = "info"
	defaultReconcileInterval = time.Minute
)

// LoadConfig loads the daemon configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() *Config {
	config := &Config{}
	// defaults never fail to parse
	_ = config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() error {
	if c.StateFile == "" {
		c.StateFile = defaultStateFile
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.ReconcileInterval == "" {
		c.interval = defaultReconcileInterval
		return nil
	}
	interval, err := time.ParseDuration(c.ReconcileInterval)
	if err != nil {
		return fmt.Errorf("failed to parse reconcile_interval: %v", err)
	}
	if interval <= 0 {
		return fmt.Errorf("reconcile_interval must be positive, got %s", c.ReconcileInterval)
	}
	c.interval = interval
	return nil
}

// Interval returns the parsed reconcile interval
func (c *Config) Interval() time.Duration {
	return c.interval
}
