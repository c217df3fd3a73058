// Package logger builds *slog.Logger instances for formkit tools and provides
// attribute helpers that keep key names consistent across packages.
//
// New takes functional options for format, level, output, static attributes
// and ContextExtractor callbacks. Extractors run on every record and pull
// request-scoped values, such as the form identifier stored with
// ContextWithFormID, out of the logging context.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("formrun"),
//	    logger.WithFormIDFromContext(),
//	)
//	ctx := logger.ContextWithFormID(context.Background(), f.ID())
//	log.InfoContext(ctx, "validation finished", logger.Field("email"))
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
