package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	neturl "net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileJar_Persist(t *testing.T) {
	location := filepath.Join(t.TempDir(), "jar", "cookies.json")
	jar, err := NewFileJar(location)
	require.NoError(t, err)

	u, _ := neturl.Parse("http://127.0.0.1:8080/api/v1/auth/login")
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "s1", Path: "/"}})

	reloaded, err := NewFileJar(location)
	require.NoError(t, err)
	probe, _ := neturl.Parse("http://127.0.0.1:8080/api/v1/user/me")
	cookies := reloaded.Cookies(probe)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "s1", cookies[0].Value)
}

func TestFileJar_ClearedCookie(t *testing.T) {
	location := filepath.Join(t.TempDir(), "cookies.json")
	jar, err := NewFileJar(location)
	require.NoError(t, err)

	u, _ := neturl.Parse("http://localhost/api")
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "s1", Path: "/"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "", Path: "/", MaxAge: -1}})
	assert.Empty(t, jar.Cookies(u))

	reloaded, err := NewFileJar(location)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Cookies(u))
}

func TestWrapWithCookieJar(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			seen = append(seen, c.Value)
		} else {
			seen = append(seen, "")
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
	}))
	defer server.Close()

	jar, err := NewFileJar(filepath.Join(t.TempDir(), "cookies.json"))
	require.NoError(t, err)
	rt := WrapWithCookieJar(http.DefaultTransport, jar)
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
		resp, err := rt.RoundTrip(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	assert.Equal(t, []string{"", "s1"}, seen)
	assert.Nil(t, WrapWithCookieJar(nil, jar))
}
