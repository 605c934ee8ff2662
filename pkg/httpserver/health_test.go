package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/httpserver"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		probes map[string]httpserver.Probe
		status int
		failed map[string]any
	}{
		{name: "liveness", status: http.StatusOK},
		{name: "all healthy", probes: map[string]httpserver.Probe{"redis": ok}, status: http.StatusOK},
		{
			name:   "one failing",
			probes: map[string]httpserver.Probe{"redis": down, "store": ok},
			status: http.StatusServiceUnavailable,
			failed: map[string]any{"redis": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			httpserver.HealthHandler(nil, tt.probes)(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.failed == nil {
				assert.Equal(t, "ok", body["status"])
				return
			}
			assert.Equal(t, "unavailable", body["status"])
			assert.Equal(t, tt.failed, body["failed"])
		})
	}
}
