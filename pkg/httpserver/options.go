package httpserver

import (
	"log/slog"
	"time"
)

type Option func(*Server)

// WithConfig applies every non-zero field of cfg.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		if cfg.Addr != "" {
			s.config.Addr = cfg.Addr
		}
		if cfg.ReadTimeout > 0 {
			s.config.ReadTimeout = cfg.ReadTimeout
		}
		if cfg.WriteTimeout > 0 {
			s.config.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			s.config.IdleTimeout = cfg.IdleTimeout
		}
		if cfg.ShutdownTimeout > 0 {
			s.config.ShutdownTimeout = cfg.ShutdownTimeout
		}
	}
}

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.config.Addr = addr
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.config.ShutdownTimeout = d
		}
	}
}

// WithLogger sets the logger for lifecycle events. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithoutSignals disables SIGINT/SIGTERM handling; only the Run context
// stops the server.
func WithoutSignals() Option {
	return func(s *Server) {
		s.signals = false
	}
}
