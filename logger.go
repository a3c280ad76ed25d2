package aspect

import (
	"log/slog"

	"github.com/AnatoleLucet/aspect/internal"
)

// SetLogger configures the logger used by the engine and the packages
// built on it. By default nothing is logged. Pass nil to restore that.
//
// Registration, tree mutations, propagation and validation passes are
// logged at [slog.LevelDebug].
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return internal.Logger()
}
