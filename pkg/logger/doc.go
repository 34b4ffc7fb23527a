// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks the handler from the configured Format. FormatJSON uses
// slog.NewJSONHandler. FormatText uses tint for colourised console output;
// colour is turned off automatically when the writer is not a terminal.
// Registered ContextExtractor callbacks run on every Handle call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "updown"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithOutput(os.Stderr),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.InfoContext(ctx, "file archived",
//	    logger.FileHash(hash),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Attributes
//
// attr.go holds constructors for the keys used across the module (error,
// request_id, component, file_hash and friends) so naming stays consistent.
// Error and Errors return an empty attribute for nil input, which slog drops:
//
//	log.Info("done", logger.Error(err))
package logger
