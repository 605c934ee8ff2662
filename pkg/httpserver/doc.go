// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown.
//
// Run listens before it returns control to the caller's goroutine, so bind
// errors are reported immediately and wrapped with ErrStart. It then blocks
// until the context is cancelled or the process receives SIGINT/SIGTERM,
// drains in-flight requests for at most ShutdownTimeout and runs the
// registered shutdown callbacks (closing stores, flushing logs).
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	srv.OnShutdown(func(context.Context) error { return sessions.Close() })
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthHandler turns a set of named probes (redis.Healthcheck and friends)
// into a readiness endpoint.
package httpserver
