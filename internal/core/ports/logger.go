// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for structured application logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, rendering its full cause chain.
	Error(err error)
}
