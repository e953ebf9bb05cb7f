package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description string
		document    string
		env         map[string]string
		expect      func(t *testing.T, cfg *Config)
	}{
		{
			description: "yaml with defaults",
			document: `baseURL: http://localhost:5000
clientID: client-1
widgetTimeout: 30s
`,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
				assert.Equal(t, "client-1", cfg.ClientID)
				assert.Equal(t, 30*time.Second, cfg.WidgetTimeout)
				assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
				assert.Equal(t, DefaultCallTimeout, cfg.ProbeTimeout)
				assert.Equal(t, DefaultRootPath, cfg.RootPath)
				assert.Equal(t, DefaultLoginPath, cfg.LoginPath)
				assert.Equal(t, "info", cfg.Logging.Level)
			},
		},
		{
			description: "json document",
			document:    `{"baseURL":"http://api","clientID":"c2","pollInterval":"250ms","logging":{"level":"debug","format":"json"}}`,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "c2", cfg.ClientID)
				assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			description: "env override",
			document: `baseURL: http://localhost:5000
clientID: client-1
`,
			env: map[string]string{
				"SESSIONAUTH_CLIENT_ID":        "from-env",
				"SESSIONAUTH_EXCHANGE_TIMEOUT": "3s",
				"SESSIONAUTH_LOG_LEVEL":        "warn",
			},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
				assert.Equal(t, "from-env", cfg.ClientID)
				assert.Equal(t, 3*time.Second, cfg.ExchangeTimeout)
				assert.Equal(t, "warn", cfg.Logging.Level)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			location := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(location, []byte(testCase.document), 0o600))
			cfg, err := Load(context.Background(), location)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			testCase.expect(t, cfg)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{WidgetTimeout: -time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseURL")
	assert.Contains(t, err.Error(), "clientID")
	assert.Contains(t, err.Error(), "widgetTimeout")
}

func TestDefault(t *testing.T) {
	t.Setenv("SESSIONAUTH_BASE_URL", "http://env")
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "http://env", cfg.BaseURL)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
}
