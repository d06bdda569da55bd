package arena

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the arena (spawns, hits).
// Set via EnableDebugLogging() from main after parsing config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the arena.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Guard expensive debug log calls with it:
//
//	if arena.IsDebugEnabled() {
//	    slog.Debug("arena spawn", "side", s, "kind", l.Kind)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
