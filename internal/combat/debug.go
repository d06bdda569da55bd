package combat

import "sync/atomic"

// debugLoggingEnabled controls whether debug logging is enabled for the combat core.
// Checked on every activation and state change, so it is an atomic flag instead of
// a slog level lookup.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the combat core.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
