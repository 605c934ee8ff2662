package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/httpserver"
)

const anyPort = "127.0.0.1:0"

// start runs srv in the background and waits until it is bound.
func start(t *testing.T, srv *httpserver.Server, h http.Handler) (context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	require.Eventually(t, func() bool { return srv.Addr() != anyPort }, time.Second, 5*time.Millisecond)
	return cancel, done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "run did not return")
		return nil
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(anyPort), httpserver.WithoutSignals())
	cancel, done := start(t, srv, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	cancel()
	require.NoError(t, wait(t, done))
	assert.Equal(t, anyPort, srv.Addr(), "address is released after stop")
}

func TestRun_BindError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", anyPort)
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()), httpserver.WithoutSignals())
	err = srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestRun_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(anyPort), httpserver.WithoutSignals())
	cancel, done := start(t, srv, nil)

	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	require.NoError(t, wait(t, done))
}

func TestRun_OnShutdown(t *testing.T) {
	t.Parallel()

	t.Run("runs in order", func(t *testing.T) {
		t.Parallel()

		var order []int
		var calls atomic.Int32
		srv := httpserver.New(httpserver.WithAddr(anyPort), httpserver.WithoutSignals())
		srv.OnShutdown(func(context.Context) error { order = append(order, 1); calls.Add(1); return nil })
		srv.OnShutdown(func(context.Context) error { order = append(order, 2); calls.Add(1); return nil })

		cancel, done := start(t, srv, nil)
		assert.Zero(t, calls.Load())
		cancel()

		require.NoError(t, wait(t, done))
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("errors are reported", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("close failed")
		srv := httpserver.New(httpserver.WithAddr(anyPort), httpserver.WithoutSignals())
		srv.OnShutdown(func(context.Context) error { return boom })

		cancel, done := start(t, srv, nil)
		cancel()

		err := wait(t, done)
		assert.ErrorIs(t, err, httpserver.ErrShutdown)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRun_DrainsInFlight(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(anyPort),
		httpserver.WithShutdownTimeout(2*time.Second),
		httpserver.WithoutSignals(),
	)
	cancel, done := start(t, srv, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusAccepted)
	}))

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr())
		if err != nil {
			status <- 0
			return
		}
		_ = resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-entered
	cancel()
	close(release)

	assert.Equal(t, http.StatusAccepted, <-status)
	require.NoError(t, wait(t, done))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: anyPort}, httpserver.WithoutSignals())
	assert.Equal(t, anyPort, srv.Addr())

	srv = httpserver.NewFromConfig(httpserver.Config{})
	assert.Equal(t, httpserver.DefaultConfig().Addr, srv.Addr())
}
