package s2

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() { SetLogger(nil) }

// SetLogger routes s2 diagnostics to l; nil silences them again, which is
// also the initial state. s2 emits:
//
//	debug  "update"     frame number and node count after Scene.Update
//	debug  "intersect"  segment counts and hits of Intersector.Intersect
//	warn   "falling back to identity"  Matrix.Invert on a singular matrix
//	warn   "owner chain too deep", "too many listeners"  Graph debug checks
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger { return logger.Load() }
