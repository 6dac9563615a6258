package brain

import (
	"log/slog"
	"os"
)

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithLogger sets the log handler. A nil handler keeps the default.
func WithLogger(handler slog.Handler) Option {
	return func(e *Evaluator) error {
		if handler != nil {
			e.logger = slog.New(handler.WithGroup("brain"))
		}
		return nil
	}
}

// WithVariables seeds the variable store. The map is copied.
func WithVariables(vars map[string]float64) Option {
	return func(e *Evaluator) error {
		for name, v := range vars {
			e.variables[name] = v
		}
		return nil
	}
}

// DefaultHandler returns the log handler used when none is configured.
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, nil)
}
