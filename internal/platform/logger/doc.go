// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, a colored text format for local development, and an
// extra CRITICAL level for failures that must never go unnoticed.
package logger
