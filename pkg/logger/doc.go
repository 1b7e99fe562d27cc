// Package logger builds *slog.Logger values for the project key services and
// tools, and provides attribute helpers so log fields are named consistently.
//
// New takes functional options: output format (json or text), level, output
// writer, static attributes and context extractors. WithEnvironment applies
// development, staging or production defaults in one call, and ParseLevel
// turns a config string into a slog.Level.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "projectkeys"),
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
//	log.InfoContext(ctx, "project key assigned",
//	    logger.ProjectID(p.ID),
//	    logger.ProjectKey(key),
//	    logger.Provenance(string(c.Provenance)),
//	)
//
// Helpers such as Error, ProjectID and ProjectKey return an empty slog.Attr
// for zero values, which slog drops, so they can be passed unconditionally.
package logger
