package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// ShutdownFunc runs after the server stopped accepting requests.
type ShutdownFunc func(ctx context.Context) error

type Server struct {
	config  Config
	logger  *slog.Logger
	signals bool

	mu         sync.Mutex
	listener   net.Listener
	onShutdown []ShutdownFunc
}

func New(opts ...Option) *Server {
	s := &Server{
		config:  DefaultConfig(),
		logger:  slog.New(slog.DiscardHandler),
		signals: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnShutdown registers fn to run during graceful shutdown, in registration order.
func (s *Server) OnShutdown(fn ShutdownFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onShutdown = append(s.onShutdown, fn)
}

// Addr returns the bound address while the server is running, otherwise the
// configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Run serves handler until ctx is done or a termination signal arrives.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	ln, err := s.listen()
	if err != nil {
		return err
	}
	defer s.release()

	if s.signals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.logger.InfoContext(ctx, "http server started", logger.Component("httpserver"), slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrStart, err)
	case <-ctx.Done():
	}

	return s.shutdown(context.WithoutCancel(ctx), srv, errCh)
}

func (s *Server) listen() (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil, errors.Join(ErrStart, ErrAlreadyRunning)
	}
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return nil, errors.Join(ErrStart, err)
	}
	s.listener = ln
	return ln, nil
}

func (s *Server) release() {
	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()
}

func (s *Server) shutdown(ctx context.Context, srv *http.Server, errCh <-chan error) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.InfoContext(ctx, "http server shutting down", logger.Component("httpserver"))

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs = append(errs, err)
	}

	s.mu.Lock()
	hooks := append([]ShutdownFunc(nil), s.onShutdown...)
	s.mu.Unlock()
	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		err := errors.Join(append([]error{ErrShutdown}, errs...)...)
		s.logger.ErrorContext(ctx, "http server shutdown failed", logger.Component("httpserver"), logger.Error(err))
		return err
	}
	s.logger.InfoContext(ctx, "http server stopped", logger.Component("httpserver"))
	return nil
}
