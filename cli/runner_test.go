package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sessionauth/backend/mock"
	"github.com/viant/sessionauth/schema"
)

func TestRunner_Run(t *testing.T) {
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()
	credential, err := server.IssueCredential(&schema.User{ID: "u1", Name: "Ann", Email: "a@x.com"})
	require.NoError(t, err)
	jar := filepath.Join(t.TempDir(), "cookies.json")

	var testCases = []struct {
		description string
		options     *Options
		in          string
		expect      []string
		expectErr   string
	}{
		{
			description: "credential flag",
			options:     &Options{URL: server.URL, ClientID: "test_client_id", Credential: credential, CookieJar: jar},
			expect:      []string{"state: widget_awaited", "state: exchanging", "state: authenticated(u1)", "navigate: /"},
		},
		{
			description: "session kept in jar, then logout",
			options:     &Options{URL: server.URL, ClientID: "test_client_id", CookieJar: jar, Logout: true},
			expect:      []string{"state: authenticated(u1)", "state: unauthenticated", "navigate: /login"},
		},
		{
			description: "credential from stdin",
			options:     &Options{URL: server.URL, ClientID: "test_client_id"},
			in:          credential + "\n",
			expect:      []string{"credential: ", "state: authenticated(u1)", "navigate: /"},
		},
		{
			description: "rejected credential",
			options:     &Options{URL: server.URL, ClientID: "test_client_id", Credential: "tok-123"},
			expect:      []string{"state: failed(Authentication failed)"},
			expectErr:   "Authentication failed",
		},
		{
			description: "stdin closed without credential",
			options:     &Options{URL: server.URL, ClientID: "test_client_id"},
			expect:      []string{"credential: ", "state: unauthenticated"},
			expectErr:   "no credential entered",
		},
		{
			description: "missing client id",
			options:     &Options{URL: server.URL},
			expectErr:   "clientID is required",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			out := &bytes.Buffer{}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := NewRunner(strings.NewReader(testCase.in), out).Run(ctx, testCase.options)
			if testCase.expectErr != "" {
				assert.ErrorContains(t, err, testCase.expectErr)
			} else {
				require.NoError(t, err)
			}
			output := out.String()
			for _, fragment := range testCase.expect {
				assert.Contains(t, output, fragment)
			}
			if testCase.expectErr == "" && testCase.options.Credential != "" {
				// the redirect is written before Run returns
				assert.True(t, strings.HasSuffix(output, "navigate: /\n"), output)
			}
		})
	}
	assert.Equal(t, 1, server.Sessions())
}

func TestRun_Flags(t *testing.T) {
	err := Run([]string{"--unknown"})
	assert.Error(t, err)
}
