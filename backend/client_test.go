package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sessionauth/backend"
	"github.com/viant/sessionauth/backend/mock"
	"github.com/viant/sessionauth/schema"
)

var ann = &schema.User{ID: "u1", Name: "Ann", Email: "a@x.com"}

func TestClient_Probe(t *testing.T) {
	var testCases = []struct {
		description string
		status      int
		body        string
		expectUser  *schema.User
		expectErr   bool
		expectCode  int
	}{
		{description: "session", status: http.StatusOK, body: `{"id":"u1","name":"Ann","email":"a@x.com"}`, expectUser: ann},
		{description: "no session", status: http.StatusUnauthorized, body: `{"error":"Not authenticated"}`},
		{description: "forbidden", status: http.StatusForbidden},
		{description: "user vanished", status: http.StatusNotFound, body: `{"error":"User not found"}`},
		{description: "server error", status: http.StatusInternalServerError, expectErr: true, expectCode: http.StatusInternalServerError},
		{description: "malformed body", status: http.StatusOK, body: `{"id":`, expectErr: true, expectCode: http.StatusOK},
		{description: "empty user", status: http.StatusOK, body: `{}`, expectErr: true, expectCode: http.StatusOK},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/user/me", r.URL.Path)
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			defer server.Close()
			client, err := backend.New(server.URL)
			require.NoError(t, err)

			user, err := client.Probe(context.Background())
			if testCase.expectErr {
				var netErr *schema.NetworkError
				require.True(t, errors.As(err, &netErr), "expected NetworkError, got %v", err)
				assert.Equal(t, testCase.expectCode, netErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectUser, user)
		})
	}
}

func TestClient_ProbeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	URL := server.URL
	server.Close()
	client, err := backend.New(URL)
	require.NoError(t, err)
	_, err = client.Probe(context.Background())
	var netErr *schema.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 0, netErr.StatusCode)
	assert.Equal(t, "probe", netErr.Op)
}

func TestClient_Login(t *testing.T) {
	var testCases = []struct {
		description  string
		status       int
		body         string
		expectUser   *schema.User
		expectReason string
		expectNetErr bool
	}{
		{description: "success", status: http.StatusOK, body: `{"id":"u1","name":"Ann","email":"a@x.com"}`, expectUser: ann},
		{description: "structured rejection", status: http.StatusBadRequest, body: `{"error":"invalid token"}`, expectReason: "invalid token"},
		{description: "bare rejection", status: http.StatusUnauthorized, expectReason: "Unauthorized"},
		{description: "server error", status: http.StatusBadGateway, body: "<html>", expectNetErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			defer server.Close()
			client, err := backend.New(server.URL + "/")
			require.NoError(t, err)

			user, err := client.Login(context.Background(), "tok-123")
			switch {
			case testCase.expectReason != "":
				var authErr *schema.AuthError
				require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
				assert.Equal(t, testCase.expectReason, authErr.Reason)
				assert.Equal(t, testCase.status, authErr.StatusCode)
			case testCase.expectNetErr:
				var netErr *schema.NetworkError
				require.True(t, errors.As(err, &netErr))
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.expectUser, user)
			}
		})
	}
}

func TestClient_SessionRoundTrip(t *testing.T) {
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()

	client, err := backend.New(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := client.Probe(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	credential, err := server.IssueCredential(ann)
	require.NoError(t, err)
	user, err = client.Login(ctx, credential)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 1, server.Sessions())

	user, err = client.Probe(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ann", user.Name)

	require.NoError(t, client.Logout(ctx))
	assert.Equal(t, 0, server.Sessions())

	user, err = client.Probe(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	err = client.Logout(ctx)
	var netErr *schema.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusUnauthorized, netErr.StatusCode)
}

func TestClient_LoginRejectsForeignCredential(t *testing.T) {
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()
	other, err := mock.NewService(mock.WithClientID("other"))
	require.NoError(t, err)
	credential, err := other.IssueCredential(ann)
	require.NoError(t, err)

	client, err := backend.New(server.URL)
	require.NoError(t, err)
	_, err = client.Login(context.Background(), credential)
	var authErr *schema.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Authentication failed", authErr.Reason)
}

func TestNew_EmptyBaseURL(t *testing.T) {
	_, err := backend.New("")
	assert.Error(t, err)
}

func TestClient_URL(t *testing.T) {
	client, err := backend.New("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api/v1/user/me", client.URL(backend.MePath))
	assert.Equal(t, "http://localhost:5000/api/v1/requests/r1", client.URL("/api/v1/requests/", "r1"))
}
