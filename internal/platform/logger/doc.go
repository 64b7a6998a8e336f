// Package logger builds the service's slog JSON logger and moves
// request-scoped loggers in and out of a context.Context.
package logger
