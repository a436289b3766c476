// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in a handler that runs the registered ContextExtractor
// callbacks on every Handle call. Attribute helpers in attr.go (Error,
// RequestID, Generation, Transition, ...) keep key names consistent across
// the module.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "storefront"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "products loaded", logger.Generation(gen))
//
// Records go to stderr by default so command output on stdout stays clean.
// Nop returns a logger that discards everything, which is the default for
// library components constructed without a logger in tests.
package logger
