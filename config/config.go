package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const DefaultGatewayURL = "http://192.168.1.4:8080"

type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Pushover PushoverConfig `yaml:"pushover"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

type GatewayConfig struct {
	URL     string `yaml:"url" env:"LCI_GATEWAY_URL"`
	Timeout string `yaml:"timeout" env:"LCI_GATEWAY_TIMEOUT"`
}

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled" env:"LCI_MQTT_ENABLED"`
	Broker      string `yaml:"broker" env:"LCI_MQTT_BROKER"`
	Username    string `yaml:"username" env:"LCI_MQTT_USERNAME"`
	Password    string `yaml:"password" env:"LCI_MQTT_PASSWORD"`
	TopicPrefix string `yaml:"topic_prefix" env:"LCI_MQTT_TOPIC_PREFIX"`
	ClientID    string `yaml:"client_id" env:"LCI_MQTT_CLIENT_ID"`
}

type PushoverConfig struct {
	Token   string `yaml:"token" env:"LCI_PUSHOVER_TOKEN"`
	UserKey string `yaml:"user_key" env:"LCI_PUSHOVER_USER_KEY"`
	Enabled bool   `yaml:"enabled" env:"LCI_PUSHOVER_ENABLED"`
}

type WatchConfig struct {
	Interval    string `yaml:"interval" env:"LCI_WATCH_INTERVAL"`
	Concurrency int    `yaml:"concurrency" env:"LCI_WATCH_CONCURRENCY"`
	TankLow     int    `yaml:"tank_low" env:"LCI_WATCH_TANK_LOW"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LCI_LOG_LEVEL"`
	Format string `yaml:"format" env:"LCI_LOG_FORMAT"`
}

// Load reads the YAML file at path, if any, then applies LCI_* environment
// variables on top. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Gateway.URL == "" {
		c.Gateway.URL = DefaultGatewayURL
	}
	if c.Gateway.Timeout == "" {
		c.Gateway.Timeout = "15s"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "lci"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "lcictl"
	}
	if c.Watch.Interval == "" {
		c.Watch.Interval = "30s"
	}
	if c.Watch.Concurrency == 0 {
		c.Watch.Concurrency = 4
	}
	if c.Watch.TankLow == 0 {
		c.Watch.TankLow = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Gateway.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("gateway.url must be an absolute URL, got %q", c.Gateway.URL)
	}
	if _, err := time.ParseDuration(c.Gateway.Timeout); err != nil {
		return fmt.Errorf("gateway.timeout: %w", err)
	}
	if d, err := time.ParseDuration(c.Watch.Interval); err != nil || d <= 0 {
		return fmt.Errorf("watch.interval must be a positive duration, got %q", c.Watch.Interval)
	}
	if c.Watch.Concurrency < 1 {
		return fmt.Errorf("watch.concurrency must be at least 1, got %d", c.Watch.Concurrency)
	}
	if c.Watch.TankLow < 0 || c.Watch.TankLow > 100 {
		return fmt.Errorf("watch.tank_low must be 0-100, got %d", c.Watch.TankLow)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}
	return nil
}

// GatewayTimeout is the per-request HTTP timeout; zero disables it.
func (c *Config) GatewayTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Gateway.Timeout)
	return d
}

func (c *Config) WatchInterval() time.Duration {
	d, _ := time.ParseDuration(c.Watch.Interval)
	return d
}
