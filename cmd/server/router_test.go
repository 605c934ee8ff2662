package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/session"
)

func setupServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	cookies, err := cookie.New([]string{"router-test-secret-at-least-32-chars"})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.New(session.WithStore(store), session.WithCookieManager(cookies))
	guard, err := csrf.New()
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	srv := httptest.NewServer(newRouter(log, sessions, guard, map[string]httpserver.Probe{}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func fetchToken(t *testing.T, srv *httptest.Server, client *http.Client) map[string]string {
	t.Helper()

	resp, err := client.Get(srv.URL + "/token")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRouter_FormFlow(t *testing.T) {
	t.Parallel()
	srv, client := setupServer(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	info := fetchToken(t, srv, client)
	assert.Equal(t, "__csrf", info["field"])
	assert.Equal(t, "X-CSRF-Token", info["header"])
	require.Len(t, info["token"], 128)

	resp, err = client.PostForm(srv.URL+"/messages", url.Values{"message": {"<b>hi</b>"}})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The failed attempt rotated the token.
	info = fetchToken(t, srv, client)
	resp, err = client.PostForm(srv.URL+"/messages", url.Values{"message": {"<b>hi</b>"}, "__csrf": {info["token"]}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Accepted: &lt;b&gt;hi&lt;/b&gt;")
}

func TestRouter_HeaderToken(t *testing.T) {
	t.Parallel()
	srv, client := setupServer(t)
	info := fetchToken(t, srv, client)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/messages", strings.NewReader(url.Values{"message": {"x"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(info["header"], info["token"])

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Rotate(t *testing.T) {
	t.Parallel()
	srv, client := setupServer(t)
	before := fetchToken(t, srv, client)["token"]

	resp, err := client.PostForm(srv.URL+"/token/rotate", url.Values{"__csrf": {before}})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	after := fetchToken(t, srv, client)["token"]
	assert.NotEqual(t, before, after)
	assert.Len(t, after, 128)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()
	srv, client := setupServer(t)

	resp, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
