package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Inspector  InspectorConfig  `yaml:"inspector"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	LogLevel   string           `yaml:"log_level" validate:"oneof=debug info warn error"`
}

type InspectorConfig struct {
	BaseURL  string        `yaml:"base_url" validate:"required,url"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
}

type AggregatorConfig struct {
	URL     string        `yaml:"url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type SamplingConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
	// SpeedTolerance bounds credited progress to elapsed * SpeedTolerance.
	SpeedTolerance float64 `yaml:"speed_tolerance" validate:"gt=0"`
	// ServerWindow is the aggregator's own engagement window.
	ServerWindow time.Duration `yaml:"server_window" validate:"gt=0"`
}

type NotifierConfig struct {
	DisplayDuration time.Duration `yaml:"display_duration" validate:"gt=0"`
	Speech          SpeechConfig  `yaml:"speech"`
}

type SpeechConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command string   `yaml:"command" validate:"required_if=Enabled true"`
	Args    []string `yaml:"args"`
}

type RabbitMQConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url" validate:"required_if=Enabled true"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type MetricsConfig struct {
	// Addr is where /metrics is served. Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment references in data, decodes it and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// WindowExceeded reports whether three sampling periods no longer fit in the
// aggregator's engagement window. The tolerance and period are tuned against it.
func (s SamplingConfig) WindowExceeded() bool {
	return 3*s.Interval > s.ServerWindow
}

func (c *Config) setDefaults() {
	if c.Inspector.BaseURL == "" {
		c.Inspector.BaseURL = "http://localhost:8080"
	}
	if c.Inspector.Timeout == 0 {
		c.Inspector.Timeout = 2 * time.Second
	}
	if c.Aggregator.URL == "" {
		c.Aggregator.URL = "http://localhost:18085/api/tracker/sync"
	}
	if c.Aggregator.Timeout == 0 {
		c.Aggregator.Timeout = 10 * time.Second
	}
	if c.Sampling.Interval == 0 {
		c.Sampling.Interval = 5 * time.Second
	}
	if c.Sampling.SpeedTolerance == 0 {
		c.Sampling.SpeedTolerance = 2.0
	}
	if c.Sampling.ServerWindow == 0 {
		c.Sampling.ServerWindow = 15 * time.Second
	}
	if c.Notifier.DisplayDuration == 0 {
		c.Notifier.DisplayDuration = 8 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "study_tracker"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "notices"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
