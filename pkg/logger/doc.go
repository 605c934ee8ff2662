// Package logger builds *slog.Logger instances from functional options.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// handler with a decorator that runs ContextExtractor callbacks on every
// record. Extractors are how request-scoped values such as the request ID
// reach the log output without threading a logger through every call.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formguard"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, Component, SessionID, ...) keep key names
// consistent across packages.
package logger
