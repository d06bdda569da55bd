package combat

import (
	"fmt"

	"github.com/udisondev/archerduel/internal/model"
)

// AbilityCount is the number of skills every actor owns.
const AbilityCount = 5

// SkillKind selects the per-skill behavior. The kind of each slot is fixed by id.
type SkillKind int32

const (
	KindRapidShot SkillKind = iota
	KindMultiShot
	KindFireArrow
	KindSpeedBoost
	KindShield
)

func (k SkillKind) String() string {
	switch k {
	case KindRapidShot:
		return "RAPID_SHOT"
	case KindMultiShot:
		return "MULTI_SHOT"
	case KindFireArrow:
		return "FIRE_ARROW"
	case KindSpeedBoost:
		return "SPEED_BOOST"
	case KindShield:
		return "SHIELD"
	default:
		return "UNKNOWN"
	}
}

// KindForID returns the skill kind bound to ability slot id.
func KindForID(id int) (SkillKind, bool) {
	if id < 0 || id >= AbilityCount {
		return 0, false
	}
	return SkillKind(id), true
}

// singleShot kinds end right after their one discharge.
func (k SkillKind) singleShot() bool {
	return k == KindMultiShot || k == KindFireArrow || k == KindShield
}

// stateMask is a set of combat states.
type stateMask uint16

func maskOf(states ...model.CombatState) stateMask {
	var m stateMask
	for _, s := range states {
		m |= 1 << uint(s)
	}
	return m
}

func (m stateMask) has(s model.CombatState) bool {
	return m&(1<<uint(s)) != 0
}

// allSkillsAndDeath is the exclusivity class shared by every skill:
// no skill starts while any skill window is open or after death.
var allSkillsAndDeath = maskOf(
	model.StateSkill1Active,
	model.StateSkill2Active,
	model.StateSkill3Active,
	model.StateSkill4Active,
	model.StateSkill5Active,
	model.StateDeath,
)

// Ability describes one skill slot. Kind specific fields are ignored by other kinds.
type Ability struct {
	ID           int
	Kind         SkillKind
	BaseCooldown float64
	AIWeight     float64

	// Duration is the effect window of RapidShot and SpeedBoost.
	Duration float64
	// Windup is the delay before single shot kinds discharge on their own.
	// Zero means the discharge waits for an external FireEffect signal.
	Windup float64

	AngleDegrees  float64 // MultiShot, FireArrow
	AngleMin      float64 // RapidShot
	AngleMax      float64 // RapidShot
	SpeedModifier float64 // launch speed multiplier
	ArrowCount    int     // MultiShot
	Spread        float64 // MultiShot

	SpeedMultiplier float64 // SpeedBoost

	Fire model.GroundFire // FireArrow
	Ward model.Ward       // Shield

	excludes stateMask
}

// Conflicts reports whether the ability cannot start while the actor is in state s.
func (a *Ability) Conflicts(s model.CombatState) bool {
	return a.excludes.has(s)
}

// ActiveState returns the SkillNActive state of this ability.
func (a *Ability) ActiveState() model.CombatState {
	s, _ := model.SkillState(a.ID)
	return s
}

func (a *Ability) validate() error {
	if a.BaseCooldown < 0 {
		return fmt.Errorf("ability %d: negative base cooldown %v", a.ID, a.BaseCooldown)
	}
	if a.AIWeight < 0 {
		return fmt.Errorf("ability %d: negative ai weight %v", a.ID, a.AIWeight)
	}
	if a.Duration < 0 || a.Windup < 0 {
		return fmt.Errorf("ability %d: negative duration or windup", a.ID)
	}
	switch a.Kind {
	case KindRapidShot, KindSpeedBoost:
		if a.Duration <= 0 {
			return fmt.Errorf("ability %d (%s): effect window must be positive", a.ID, a.Kind)
		}
	case KindMultiShot:
		if a.ArrowCount < 1 {
			return fmt.Errorf("ability %d (%s): arrow count must be positive", a.ID, a.Kind)
		}
	}
	if a.Kind == KindRapidShot && a.AngleMax < a.AngleMin {
		return fmt.Errorf("ability %d (%s): angle max below min", a.ID, a.Kind)
	}
	return nil
}
