package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// HealthHandler runs every probe and answers 200 with {"status":"ok"} or 503
// with the names of the failing probes. With no probes it is a liveness check.
func HealthHandler(log *slog.Logger, probes map[string]Probe) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		failed := map[string]string{}
		for name, probe := range probes {
			if err := probe(ctx); err != nil {
				log.WarnContext(ctx, "health probe failed",
					logger.Component("httpserver"),
					slog.String("probe", name),
					logger.Error(err),
				)
				failed[name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if len(failed) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "failed": failed})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}
}
