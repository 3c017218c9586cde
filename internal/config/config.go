package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrNoValidTargets = errors.New("config: no valid targets")

type Config struct {
	Global    Global                    `yaml:"global"`
	Websites  map[string]Website        `yaml:"websites"`
	Notifiers map[string]NotifierConfig `yaml:"notifiers"`
	Log       LogConfig                 `yaml:"log"`
	API       APIConfig                 `yaml:"api"`
}

type Global struct {
	DefaultInterval int `yaml:"default_interval"` // seconds
	DefaultTimeout  int `yaml:"default_timeout"`  // milliseconds
	NotifyTimeout   int `yaml:"notify_timeout"`   // milliseconds
}

type Website struct {
	URL      string `yaml:"url"`
	Method   string `yaml:"method"`   // HEAD (default), GET or POST
	Request  string `yaml:"request"`  // POST body
	Interval *int   `yaml:"interval"` // seconds, falls back to global.default_interval
	Timeout  *int   `yaml:"timeout"`  // milliseconds, falls back to global.default_timeout
}

// NotifierConfig holds exactly one transport.
type NotifierConfig struct {
	Command  *CommandConfig  `yaml:"command"`
	Telegram *TelegramConfig `yaml:"telegram"`
	Slack    *SlackConfig    `yaml:"slack"`
}

type CommandConfig struct {
	Cmd  string   `yaml:"cmd"`
	Args []string `yaml:"args"`
}

type TelegramConfig struct {
	Token string `yaml:"token"`
	Chat  string `yaml:"chat"`
}

type SlackConfig struct {
	Webhook string `yaml:"webhook"`
}

type LogConfig struct {
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`
	Console *bool  `yaml:"console"`
}

type APIConfig struct {
	Addr  string `yaml:"addr"` // empty disables the status API
	RPM   int    `yaml:"rpm"`  // requests per minute per client IP, 0 disables limiting
	Burst int    `yaml:"burst"`
}

// Load reads the YAML file at path, applies defaults and then env overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Global.DefaultInterval <= 0 {
		c.Global.DefaultInterval = 60
	}
	if c.Global.DefaultTimeout <= 0 {
		c.Global.DefaultTimeout = 10000
	}
	if c.Global.NotifyTimeout <= 0 {
		c.Global.NotifyTimeout = 10000
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Console == nil {
		on := true
		c.Log.Console = &on
	}
	if c.API.RPM > 0 && c.API.Burst <= 0 {
		c.API.Burst = c.API.RPM / 2
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Log.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("DEFAULT_INTERVAL_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Global.DefaultInterval = n
		}
	}
	if v := os.Getenv("DEFAULT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Global.DefaultTimeout = n
		}
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		if c.Notifiers == nil {
			c.Notifiers = map[string]NotifierConfig{}
		}
		c.Notifiers["slack_env"] = NotifierConfig{Slack: &SlackConfig{Webhook: v}}
	}
}

func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Global.NotifyTimeout) * time.Millisecond
}

func (c *Config) Console() bool { return c.Log.Console != nil && *c.Log.Console }
