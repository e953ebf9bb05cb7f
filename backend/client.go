package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"

	"github.com/viant/afs/url"
	"github.com/viant/sessionauth/logger"
	"github.com/viant/sessionauth/schema"
)

const (
	MePath     = "api/v1/user/me"
	LoginPath  = "api/v1/auth/login"
	LogoutPath = "api/v1/auth/logout"

	maxErrorBody = 64 * 1024
)

// Client talks to the dashboard backend. Every request carries the session
// cookies held by the client's jar.
type Client struct {
	baseURL    string
	transport  http.RoundTripper
	jar        http.CookieJar
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a backend client for baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend: base URL was empty")
	}
	ret := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: http.DefaultTransport,
		logger:    logger.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		ret.jar = jar
	}
	ret.httpClient = &http.Client{Transport: WrapWithCookieJar(ret.transport, ret.jar)}
	return ret, nil
}

// Jar returns the session cookie jar.
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

// URL returns the absolute URL of a backend path.
func (c *Client) URL(elements ...string) string {
	trimmed := make([]string, 0, len(elements))
	for _, element := range elements {
		trimmed = append(trimmed, strings.Trim(element, "/"))
	}
	return url.Join(c.baseURL, trimmed...)
}

// Do sends a request to the backend path; query and body are optional.
func (c *Client) Do(ctx context.Context, method, path string, query neturl.Values, body io.Reader, contentType string) (*http.Response, error) {
	URL := c.URL(path)
	if len(query) > 0 {
		URL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, URL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("backend call", "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

// Probe reports the user of the current session, or nil when there is none.
func (c *Client) Probe(ctx context.Context) (*schema.User, error) {
	resp, err := c.Do(ctx, http.MethodGet, MePath, nil, nil, "")
	if err != nil {
		return nil, &schema.NetworkError{Op: "probe", Err: err}
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		drain(resp.Body)
		return nil, nil
	}
	if !IsSuccess(resp.StatusCode) {
		drain(resp.Body)
		return nil, &schema.NetworkError{Op: "probe", StatusCode: resp.StatusCode}
	}
	user, err := decodeUser(resp.Body)
	if err != nil {
		return nil, &schema.NetworkError{Op: "probe", StatusCode: resp.StatusCode, Err: err}
	}
	return user, nil
}

// Login exchanges a widget credential for a session.
func (c *Client) Login(ctx context.Context, credential string) (*schema.User, error) {
	payload, err := json.Marshal(&schema.LoginRequest{Token: credential})
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, http.MethodPost, LoginPath, nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, &schema.NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()
	if !IsSuccess(resp.StatusCode) {
		return nil, rejection(resp)
	}
	user, err := decodeUser(resp.Body)
	if err != nil {
		return nil, &schema.NetworkError{Op: "login", StatusCode: resp.StatusCode, Err: err}
	}
	return user, nil
}

// Logout terminates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, LogoutPath, nil, nil, "")
	if err != nil {
		return &schema.NetworkError{Op: "logout", Err: err}
	}
	defer resp.Body.Close()
	drain(resp.Body)
	if !IsSuccess(resp.StatusCode) {
		return &schema.NetworkError{Op: "logout", StatusCode: resp.StatusCode}
	}
	return nil
}

// IsSuccess reports a 2xx status.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func decodeUser(body io.Reader) (*schema.User, error) {
	user := &schema.User{}
	if err := json.NewDecoder(body).Decode(user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		return nil, errors.New("user id was empty")
	}
	return user, nil
}

// rejection converts a failed login response into an AuthError when the body is
// structured, otherwise into a NetworkError.
func rejection(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	errResponse := &schema.ErrorResponse{}
	if json.Unmarshal(data, errResponse) == nil && errResponse.Error != "" {
		return &schema.AuthError{Reason: errResponse.Error, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode >= 500 {
		return &schema.NetworkError{Op: "login", StatusCode: resp.StatusCode}
	}
	return &schema.AuthError{Reason: http.StatusText(resp.StatusCode), StatusCode: resp.StatusCode}
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
}
