// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv4, stores it in the request context and echoes it back in
// the response. LoggerExtractor plugs the ID into pkg/logger so every record
// written while serving the request carries it.
package requestid
