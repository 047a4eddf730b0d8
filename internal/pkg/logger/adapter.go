package logger

import (
	"io"
	"log/slog"

	"market_scout/internal/app/port"
)

// slogAdapter implements port.Logger on top of the package-level functions,
// so services can be handed a logger without depending on this package.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }

// Nop returns a port.Logger that discards everything. Used in tests.
func Nop() port.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
