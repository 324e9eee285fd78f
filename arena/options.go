package arena

import "go.uber.org/zap"

// Option configures an Arena at construction time.
type Option func(*Arena)

// WithMaxSize caps the number of bytes the arena hands out, counting chunk
// memory in use and garbage-collected allocations made through it.
// Requests past the cap fail with ErrExhausted. Zero or less means unlimited.
func WithMaxSize(bytes int) Option {
	return func(a *Arena) {
		a.maxSize = bytes
	}
}

// WithLogger overrides the package logger for a single arena.
func WithLogger(l *zap.Logger) Option {
	return func(a *Arena) {
		a.log = l
	}
}
