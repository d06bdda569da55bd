package model

// Intention represents the phase of the enemy behavior scheduler.
type Intention int32

const (
	// IntentionIdle - scheduler is about to decide the next phase
	IntentionIdle Intention = iota
	// IntentionPatrol - walking in a random direction for a fixed duration
	IntentionPatrol
	// IntentionAttack - plain attack phase for a fixed duration
	IntentionAttack
	// IntentionCast - waiting for a skill effect window to end
	IntentionCast
	// IntentionDead - scheduler torn down, nothing starts anymore
	IntentionDead
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionPatrol:
		return "PATROL"
	case IntentionAttack:
		return "ATTACK"
	case IntentionCast:
		return "CAST"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
