// Package logging builds slog loggers for Molmine and carries the
// standardized attribute keys used across packages.
package logging
