package log

import (
	"go.uber.org/zap"
)

// OrNop normalizes an optional logger. A nil logger becomes a nop
// logger, so callers can log unconditionally instead of guarding
// every call site.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

// Scoped derives the logger a namespaced store logs through: a child
// of logger named "namespace" and carrying the namespace as a field,
// so entries from different scopes stay tellable apart. A nil logger
// yields a nop logger.
func Scoped(logger *zap.Logger, ns string) *zap.Logger {
	return OrNop(logger).Named("namespace").With(zap.String("namespace", ns))
}
