package session

import (
	"time"

	"github.com/viant/sessionauth/config"
	"github.com/viant/sessionauth/logger"
)

type Option func(s *Service)

// WithLogger sets service logger
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithNavigator sets the redirect target receiver
func WithNavigator(navigator Navigator) Option {
	return func(s *Service) {
		s.navigator = navigator
	}
}

// WithClientID sets the widget client id
func WithClientID(clientID string) Option {
	return func(s *Service) {
		s.clientID = clientID
	}
}

// WithPaths sets the post login and post logout redirect paths
func WithPaths(rootPath, loginPath string) Option {
	return func(s *Service) {
		if rootPath != "" {
			s.rootPath = rootPath
		}
		if loginPath != "" {
			s.loginPath = loginPath
		}
	}
}

// WithPollInterval sets the widget poll interval
func WithPollInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithWidgetTimeout bounds the widget wait, zero waits until cancelled
func WithWidgetTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.widgetTimeout = timeout
	}
}

// WithTimeouts sets probe, exchange and logout call timeouts, non-positive values keep defaults
func WithTimeouts(probe, exchange, logout time.Duration) Option {
	return func(s *Service) {
		if probe > 0 {
			s.probeTimeout = probe
		}
		if exchange > 0 {
			s.exchangeTimeout = exchange
		}
		if logout > 0 {
			s.logoutTimeout = logout
		}
	}
}

// WithConfig applies configuration settings
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithClientID(cfg.ClientID)(s)
		WithPaths(cfg.RootPath, cfg.LoginPath)(s)
		WithPollInterval(cfg.PollInterval)(s)
		WithWidgetTimeout(cfg.WidgetTimeout)(s)
		WithTimeouts(cfg.ProbeTimeout, cfg.ExchangeTimeout, cfg.LogoutTimeout)(s)
	}
}
