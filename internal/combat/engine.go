package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/archerduel/internal/model"
)

// window is the open effect window of the active skill.
type window struct {
	ability  *Ability
	elapsed  float64
	snapshot float64 // value restored at end (attack cooldown base or move speed)
	fired    bool
}

// Engine starts skills, runs their effect windows and finalizes them.
// At most one window is open at a time.
type Engine struct {
	actor *Actor
	win   *window
	uses  [AbilityCount]int
}

func newEngine(a *Actor) *Engine {
	return &Engine{actor: a}
}

// Active returns the id of the open window, if any.
func (e *Engine) Active() (int, bool) {
	if e.win == nil {
		return 0, false
	}
	return e.win.ability.ID, true
}

// IsActive reports whether a skill window is open.
func (e *Engine) IsActive() bool {
	return e.win != nil
}

// Uses returns how many times each ability was activated.
func (e *Engine) Uses() [AbilityCount]int {
	return e.uses
}

// Check reports why ability id cannot start, or nil if it can.
func (e *Engine) Check(id int) error {
	if id < 0 || id >= AbilityCount {
		return fmt.Errorf("%w: %d", ErrInvalidAbilityIndex, id)
	}
	a := e.actor
	ab := a.registry.ability(id)
	state := a.State()
	if e.win != nil || ab.Conflicts(state) {
		return fmt.Errorf("%w: ability %d in state %s", ErrExclusivityConflict, id, state)
	}
	if cd := &a.skillCooldowns[id]; !cd.IsReady() {
		return fmt.Errorf("%w: ability %d remaining %.2fs", ErrNotReady, id, cd.Remaining())
	}
	return nil
}

// TryActivate starts ability id. Returns false without side effects when the
// ability is invalid, cooling down, or blocked by the current state.
func (e *Engine) TryActivate(id int) bool {
	if err := e.Check(id); err != nil {
		if IsDebugEnabled() {
			slog.Debug("skill activation refused",
				"actor", e.actor.id,
				"ability", id,
				"err", err)
		}
		return false
	}

	a := e.actor
	ab := a.registry.ability(id)
	a.skillCooldowns[id].Arm(ab.BaseCooldown)

	w := &window{ability: ab}
	switch ab.Kind {
	case KindRapidShot:
		w.snapshot = a.attackCooldown.Base()
		a.attackCooldown.SetBase(w.snapshot / 2)
	case KindSpeedBoost:
		w.snapshot = a.moveSpeed
		a.moveSpeed *= ab.SpeedMultiplier
	}
	if ab.Kind != KindSpeedBoost {
		a.stopHorizontal()
	}

	e.win = w
	e.uses[id]++
	a.sm.SetState(ab.ActiveState())

	if IsDebugEnabled() {
		slog.Debug("skill activated",
			"actor", a.id,
			"ability", id,
			"kind", ab.Kind)
	}
	return true
}

// EndSkill closes the window of ability id, reverts its side effects and restores
// Attack when the range predicate holds, Move otherwise.
func (e *Engine) EndSkill(id int) bool {
	if e.win == nil || e.win.ability.ID != id {
		return false
	}
	a := e.actor
	w := e.win
	e.win = nil

	switch w.ability.Kind {
	case KindRapidShot:
		a.attackCooldown.SetBase(w.snapshot)
		a.baseAttackCooldown = w.snapshot
	case KindSpeedBoost:
		a.moveSpeed = w.snapshot
	}

	next := model.StateMove
	if a.inRange() {
		next = model.StateAttack
	}
	a.sm.SetState(next)

	if IsDebugEnabled() {
		slog.Debug("skill ended",
			"actor", a.id,
			"ability", id,
			"next", next)
	}
	return true
}

// FireEffect delivers the external "effect fired" signal for ability id.
// Single shot kinds discharge once and end; RapidShot fires one arrow when the
// attack cooldown allows.
func (e *Engine) FireEffect(id int) bool {
	if e.win == nil || e.win.ability.ID != id {
		return false
	}
	switch k := e.win.ability.Kind; {
	case k.singleShot():
		e.dischargeAndEnd()
		return true
	case k == KindRapidShot:
		return e.fireRapid()
	default:
		return false
	}
}

// Cancel drops the open window without ending it.
func (e *Engine) Cancel() {
	if e.win == nil {
		return
	}
	if IsDebugEnabled() {
		slog.Debug("skill window abandoned",
			"actor", e.actor.id,
			"ability", e.win.ability.ID)
	}
	e.win = nil
}

// Tick advances the open window by dt seconds.
func (e *Engine) Tick(dt float64) {
	if e.win == nil || dt <= 0 {
		return
	}
	w := e.win
	w.elapsed += dt
	ab := w.ability

	switch ab.Kind {
	case KindRapidShot:
		if w.elapsed >= ab.Duration {
			e.EndSkill(ab.ID)
			return
		}
		e.fireRapid()
	case KindSpeedBoost:
		if w.elapsed >= ab.Duration {
			e.EndSkill(ab.ID)
		}
	default:
		if ab.Windup > 0 && w.elapsed >= ab.Windup {
			e.dischargeAndEnd()
		}
	}
}

func (e *Engine) fireRapid() bool {
	a := e.actor
	if !a.attackCooldown.IsReady() {
		return false
	}
	ab := e.win.ability
	mid := (ab.AngleMin + ab.AngleMax) / 2
	a.ports.Spawner.Spawn(model.Launch{
		Kind:         model.LaunchArrow,
		Owner:        a.id,
		AngleDegrees: model.MirrorAngle(mid, a.facing),
		Speed:        a.profile.LaunchSpeed * speedMod(ab),
		Count:        1,
		Spread:       ab.AngleMax - ab.AngleMin,
		Damage:       a.profile.ArrowDamage,
	})
	a.attackCooldown.Start()
	return true
}

func (e *Engine) dischargeAndEnd() {
	w := e.win
	if !w.fired {
		w.fired = true
		e.actor.ports.Spawner.Spawn(e.launchFor(w.ability))
	}
	e.EndSkill(w.ability.ID)
}

// launchFor builds the discharge of a single shot kind.
func (e *Engine) launchFor(ab *Ability) model.Launch {
	a := e.actor
	l := model.Launch{
		Owner:        a.id,
		AngleDegrees: model.MirrorAngle(ab.AngleDegrees, a.facing),
		Speed:        a.profile.LaunchSpeed * speedMod(ab),
		Count:        1,
		Damage:       a.profile.ArrowDamage,
	}
	switch ab.Kind {
	case KindMultiShot:
		l.Kind = model.LaunchArrow
		l.Count = ab.ArrowCount
		l.Spread = ab.Spread
	case KindFireArrow:
		l.Kind = model.LaunchFireArrow
		l.Fire = ab.Fire
	case KindShield:
		l = model.Launch{
			Kind:  model.LaunchWard,
			Owner: a.id,
			Ward:  ab.Ward,
		}
	}
	return l
}

func speedMod(ab *Ability) float64 {
	if ab.SpeedModifier <= 0 {
		return 1
	}
	return ab.SpeedModifier
}
