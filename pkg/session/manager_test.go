package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/session"
)

func setupManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	cookieMgr, err := cookie.New([]string{"test-secret-key-that-is-long-enough"})
	require.NoError(t, err)

	cfg := session.DefaultConfig()
	cfg.CookieName = "test-sid"
	cfg.CleanupInterval = 0

	m := session.NewFromConfig(cfg, append([]session.Option{session.WithCookieManager(cookieMgr)}, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// withCookies returns a new request carrying the cookies set on w.
func withCookies(method string, w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(method, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew_RequiresTransport(t *testing.T) {
	assert.Panics(t, func() { session.New() })
	assert.NotPanics(t, func() {
		m := session.New(session.WithTransport(session.NewHeaderTransport("X-Session", "")))
		_ = m.Close()
	})
}

func TestManager_Ensure(t *testing.T) {
	manager := setupManager(t)
	ctx := context.Background()

	t.Run("creates new session", func(t *testing.T) {
		w := httptest.NewRecorder()
		sess, err := manager.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, sess.Token)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test-sid", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.NotEqual(t, sess.Token, cookies[0].Value, "cookie carries the encrypted token")
	})

	t.Run("returns existing session", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		first, err := manager.Ensure(ctx, w1, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		w2 := httptest.NewRecorder()
		second, err := manager.Ensure(ctx, w2, withCookies(http.MethodGet, w1))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Empty(t, w2.Result().Cookies(), "no cookie rewrite for an existing session")
	})

	t.Run("replaces invalid cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "test-sid", Value: "invalid-token"})
		w := httptest.NewRecorder()

		sess, err := manager.Ensure(ctx, w, r)
		require.NoError(t, err)
		assert.NotNil(t, sess)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestManager_LoadSave(t *testing.T) {
	manager := setupManager(t)
	ctx := context.Background()

	_, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	w := httptest.NewRecorder()
	sess, err := manager.Ensure(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.Set("__csrf", "value")
	require.NoError(t, manager.Save(ctx, sess))
	assert.False(t, sess.Modified())

	loaded, err := manager.Load(ctx, withCookies(http.MethodGet, w))
	require.NoError(t, err)
	v, ok := loaded.Get("__csrf")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	assert.ErrorIs(t, manager.Save(ctx, nil), session.ErrInvalidSession)
}

func TestManager_SaveRespectsMaxLifetime(t *testing.T) {
	manager := setupManager(t, session.WithLifetime(time.Hour, 2*time.Hour))
	ctx := context.Background()

	sess, err := manager.Ensure(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sess.CreatedAt = time.Now().Add(-90 * time.Minute)
	require.NoError(t, manager.Save(ctx, sess))

	assert.WithinDuration(t, sess.CreatedAt.Add(2*time.Hour), sess.ExpiresAt, time.Second)
}

func TestManager_Destroy(t *testing.T) {
	manager := setupManager(t)
	ctx := context.Background()

	w1 := httptest.NewRecorder()
	_, err := manager.Ensure(ctx, w1, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	require.NoError(t, manager.Destroy(ctx, w2, withCookies(http.MethodPost, w1)))

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	_, err = manager.Load(ctx, withCookies(http.MethodGet, w1))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestHeaderTransport(t *testing.T) {
	tr := session.NewHeaderTransport("Authorization", "Bearer ")

	w := httptest.NewRecorder()
	require.NoError(t, tr.SetToken(w, "tok", time.Minute))
	assert.Equal(t, "Bearer tok", w.Header().Get("Authorization"))
	assert.NotEmpty(t, w.Header().Get("Authorization-Expires"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	token, err := tr.GetToken(r)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, tr.ClearToken(w))
	assert.Empty(t, w.Header().Get("Authorization"))
}
