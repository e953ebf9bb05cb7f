package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRootPath     = "/"
	DefaultLoginPath    = "/login"
	DefaultPollInterval = 100 * time.Millisecond
	DefaultCallTimeout  = 10 * time.Second
)

// Config is the session client configuration.
// YAML (or JSON) documents are loaded first, environment variables override them.
type Config struct {
	BaseURL         string        `yaml:"baseURL" env:"SESSIONAUTH_BASE_URL"`
	ClientID        string        `yaml:"clientID" env:"SESSIONAUTH_CLIENT_ID"`
	RootPath        string        `yaml:"rootPath" env:"SESSIONAUTH_ROOT_PATH"`
	LoginPath       string        `yaml:"loginPath" env:"SESSIONAUTH_LOGIN_PATH"`
	PollInterval    time.Duration `yaml:"pollInterval" env:"SESSIONAUTH_POLL_INTERVAL"`
	WidgetTimeout   time.Duration `yaml:"widgetTimeout" env:"SESSIONAUTH_WIDGET_TIMEOUT"`
	ProbeTimeout    time.Duration `yaml:"probeTimeout" env:"SESSIONAUTH_PROBE_TIMEOUT"`
	ExchangeTimeout time.Duration `yaml:"exchangeTimeout" env:"SESSIONAUTH_EXCHANGE_TIMEOUT"`
	LogoutTimeout   time.Duration `yaml:"logoutTimeout" env:"SESSIONAUTH_LOGOUT_TIMEOUT"`
	CookieJar       string        `yaml:"cookieJar" env:"SESSIONAUTH_COOKIE_JAR"`
	Logging         Logging       `yaml:"logging"`
}

// Logging configures the logger package.
type Logging struct {
	Level  string `yaml:"level" env:"SESSIONAUTH_LOG_LEVEL"`
	Format string `yaml:"format" env:"SESSIONAUTH_LOG_FORMAT"`
	Output string `yaml:"output" env:"SESSIONAUTH_LOG_OUTPUT"`
}

// Init fills unset fields with defaults.
func (c *Config) Init() {
	if c.RootPath == "" {
		c.RootPath = DefaultRootPath
	}
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultCallTimeout
	}
	if c.ExchangeTimeout <= 0 {
		c.ExchangeTimeout = DefaultCallTimeout
	}
	if c.LogoutTimeout <= 0 {
		c.LogoutTimeout = DefaultCallTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("baseURL is required"))
	}
	if c.ClientID == "" {
		errs = append(errs, errors.New("clientID is required"))
	}
	if c.WidgetTimeout < 0 {
		errs = append(errs, errors.New("widgetTimeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Default returns a configuration built from defaults and environment variables only.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Init()
	return cfg, nil
}

// Load reads a YAML or JSON document from any afs supported URL, applies
// environment overrides and defaults.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	cfg := &Config{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Init()
	return cfg, nil
}
