// Package session keeps per-user string key/value state across HTTP requests.
//
// A Manager ties three pieces together: a Transport that carries the opaque
// session token between client and server (an encrypted cookie by default, or
// a header for API clients), a Store that persists sessions by token
// (MemoryStore or RedisStore) and a Config with idle and absolute lifetimes.
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions := session.New(
//	    session.WithCookieManager(cookies),
//	    session.WithStore(session.NewRedisStore(client)),
//	    session.WithRequestLocking(true),
//	)
//	router.Use(sessions.Middleware)
//
// Middleware loads or creates the session, stores it in the request context
// and saves it after the handler returns if any value changed. Handlers read
// it with FromContext.
//
// # Concurrency
//
// A *Session is not safe for concurrent use; it belongs to one request.
// Requests sharing a session run in parallel by default, so two of them may
// both read-modify-write the same values and the last save wins. With
// WithRequestLocking the middleware holds a per-token mutex for the whole
// request, which serializes them within one process.
//
// # Errors
//
//   - ErrSessionNotFound – no session for the token
//   - ErrSessionExpired  – session passed its idle or absolute deadline
//   - ErrTokenGeneration – the random source failed
package session
