package combat

import "errors"

// Activation is refused for exactly one of these reasons.
// Check wraps them with details; compare with errors.Is.
var (
	ErrInvalidAbilityIndex = errors.New("invalid ability index")
	ErrNotReady            = errors.New("ability not ready")
	ErrExclusivityConflict = errors.New("exclusivity conflict")
)
