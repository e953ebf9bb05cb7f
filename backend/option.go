package backend

import (
	"net/http"

	"github.com/viant/sessionauth/logger"
)

type Option func(c *Client)

// WithTransport sets the underlying round tripper
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithCookieJar sets the session cookie jar
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithLogger sets logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}
