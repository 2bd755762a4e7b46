// Package logger provides structured logging functionality for the application.
//
// It builds log/slog loggers from server configuration and carries
// request-scoped loggers through context.Context.
package logger
