package port

// Logger is the structured logging interface taken by services.
// Args are alternating key/value pairs as in log/slog.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
