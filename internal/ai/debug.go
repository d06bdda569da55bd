package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the schedulers.
// Set via EnableDebugLogging() from main after parsing config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the AI subsystem.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Guard expensive debug log calls with it:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("phase changed", "actor", id, "phase", phase)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
