package http

// Logger receives the raw request text and the response representation of
// every exchange. When action is non-empty the implementation logs a marker
// line naming the action before logging message.
type Logger interface {
	Info(message, action string)
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Info(message, action string) {}
