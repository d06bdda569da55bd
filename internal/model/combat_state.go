package model

// CombatState is the single combat state an actor is in at any instant.
type CombatState int32

const (
	// StateIdle - actor is standing still and not attacking
	StateIdle CombatState = iota
	// StateMove - actor is walking
	StateMove
	// StateAttack - actor fires basic arrows whenever its attack cooldown allows
	StateAttack
	// StateSkill1Active - rapid shot effect window
	StateSkill1Active
	// StateSkill2Active - multi shot effect window
	StateSkill2Active
	// StateSkill3Active - fire arrow effect window
	StateSkill3Active
	// StateSkill4Active - speed boost effect window
	StateSkill4Active
	// StateSkill5Active - shield effect window
	StateSkill5Active
	// StateDeath - terminal, nothing leaves it
	StateDeath
)

// AllCombatStates lists every state in declaration order.
var AllCombatStates = []CombatState{
	StateIdle,
	StateMove,
	StateAttack,
	StateSkill1Active,
	StateSkill2Active,
	StateSkill3Active,
	StateSkill4Active,
	StateSkill5Active,
	StateDeath,
}

// String returns human-readable state name
func (s CombatState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateMove:
		return "MOVE"
	case StateAttack:
		return "ATTACK"
	case StateSkill1Active:
		return "SKILL1_ACTIVE"
	case StateSkill2Active:
		return "SKILL2_ACTIVE"
	case StateSkill3Active:
		return "SKILL3_ACTIVE"
	case StateSkill4Active:
		return "SKILL4_ACTIVE"
	case StateSkill5Active:
		return "SKILL5_ACTIVE"
	case StateDeath:
		return "DEATH"
	default:
		return "UNKNOWN"
	}
}

// ParseCombatState is the inverse of String.
func ParseCombatState(name string) (CombatState, bool) {
	for _, s := range AllCombatStates {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// SkillState returns the SkillNActive state for ability id (0..4).
func SkillState(id int) (CombatState, bool) {
	if id < 0 || id > 4 {
		return 0, false
	}
	return StateSkill1Active + CombatState(id), true
}

// IsSkillActive reports whether s is one of the SkillNActive states.
func (s CombatState) IsSkillActive() bool {
	return s >= StateSkill1Active && s <= StateSkill5Active
}

// SkillID returns the ability id for a SkillNActive state.
func (s CombatState) SkillID() (int, bool) {
	if !s.IsSkillActive() {
		return -1, false
	}
	return int(s - StateSkill1Active), true
}
