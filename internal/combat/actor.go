package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/archerduel/internal/model"
)

// ActorKind distinguishes the two actor configurations.
type ActorKind int32

const (
	ActorPlayer ActorKind = iota
	ActorEnemy
)

func (k ActorKind) String() string {
	switch k {
	case ActorPlayer:
		return "PLAYER"
	case ActorEnemy:
		return "ENEMY"
	default:
		return "UNKNOWN"
	}
}

// Profile is the static configuration of an actor.
type Profile struct {
	Name               string
	MaxHealth          int32
	MoveSpeed          float64
	BaseAttackCooldown float64
	LaunchSpeed        float64
	ArrowDamage        int32
	AttackAngle        float64
	AttackRange        float64
	InitialState       model.CombatState
	Abilities          []Ability
}

// Actor composes state machine, ability registry, cooldowns and activation engine.
// Player and enemy are two configurations of the same type.
//
// Not safe for concurrent use: the host advances an actor from one goroutine.
type Actor struct {
	id      string
	kind    ActorKind
	profile Profile
	ports   Ports

	health             model.Health
	moveSpeed          float64
	baseAttackCooldown float64
	facing             model.Facing
	moveDir            float64

	attackCooldown model.Cooldown
	skillCooldowns [AbilityCount]model.Cooldown

	registry *Registry
	sm       *StateMachine
	engine   *Engine

	inRange func() bool
}

// NewActor builds an actor with all cooldowns ready.
func NewActor(id string, kind ActorKind, profile Profile, ports Ports) (*Actor, error) {
	if profile.MaxHealth <= 0 {
		return nil, fmt.Errorf("actor %s: max health must be positive", id)
	}
	if profile.MoveSpeed < 0 || profile.BaseAttackCooldown < 0 {
		return nil, fmt.Errorf("actor %s: negative move speed or attack cooldown", id)
	}
	if profile.InitialState == model.StateDeath || profile.InitialState.IsSkillActive() {
		return nil, fmt.Errorf("actor %s: invalid initial state %s", id, profile.InitialState)
	}

	registry, err := NewRegistry(profile.Abilities)
	if err != nil {
		return nil, fmt.Errorf("actor %s: %w", id, err)
	}

	ports = ports.withDefaults()
	a := &Actor{
		id:                 id,
		kind:               kind,
		profile:            profile,
		ports:              ports,
		health:             model.NewHealth(profile.MaxHealth),
		moveSpeed:          profile.MoveSpeed,
		baseAttackCooldown: profile.BaseAttackCooldown,
		facing:             model.FacingRight,
		attackCooldown:     model.NewCooldown(profile.BaseAttackCooldown),
		registry:           registry,
	}
	for i := range a.skillCooldowns {
		a.skillCooldowns[i] = model.NewCooldown(registry.ability(i).BaseCooldown)
	}

	a.sm = NewStateMachine(id, profile.InitialState, ports.Presenter)
	a.engine = newEngine(a)
	a.inRange = func() bool {
		return a.ports.Oracle.DistanceToOpponent() <= a.profile.AttackRange
	}
	a.sm.OnDeath(a.onDeath)

	return a, nil
}

// ID returns the actor id.
func (a *Actor) ID() string { return a.id }

// Kind returns player or enemy.
func (a *Actor) Kind() ActorKind { return a.kind }

// Profile returns the static configuration.
func (a *Actor) Profile() Profile { return a.profile }

// State returns the current combat state.
func (a *Actor) State() model.CombatState { return a.sm.Current() }

// IsDead reports whether the actor reached Death.
func (a *Actor) IsDead() bool { return a.sm.IsDead() }

// Health returns a copy of the health pool.
func (a *Actor) Health() model.Health { return a.health }

// MoveSpeed returns the current (possibly boosted) move speed.
func (a *Actor) MoveSpeed() float64 { return a.moveSpeed }

// Facing returns the horizontal facing.
func (a *Actor) Facing() model.Facing { return a.facing }

// MoveDirection returns the requested horizontal direction (-1, 0, +1).
func (a *Actor) MoveDirection() float64 { return a.moveDir }

// AttackCooldown returns a copy of the basic attack cooldown.
func (a *Actor) AttackCooldown() model.Cooldown { return a.attackCooldown }

// SkillCooldown returns a copy of the cooldown of ability id.
func (a *Actor) SkillCooldown(id int) (model.Cooldown, bool) {
	if id < 0 || id >= AbilityCount {
		return model.Cooldown{}, false
	}
	return a.skillCooldowns[id], true
}

// IsSkillReady reports whether ability id finished its cooldown.
func (a *Actor) IsSkillReady(id int) bool {
	cd, ok := a.SkillCooldown(id)
	return ok && cd.IsReady()
}

// Registry returns the ability table.
func (a *Actor) Registry() *Registry { return a.registry }

// Engine returns the skill activation engine.
func (a *Actor) Engine() *Engine { return a.engine }

// Position returns the body position.
func (a *Actor) Position() model.Vec2 { return a.ports.Body.Position() }

// ReadySet returns the abilities that could start right now.
func (a *Actor) ReadySet() []int {
	return a.registry.ReadySet(&a.skillCooldowns, a.State())
}

// DistanceToOpponent asks the range oracle.
func (a *Actor) DistanceToOpponent() float64 {
	return a.ports.Oracle.DistanceToOpponent()
}

// DirectionToOpponent asks the range oracle which way the opponent is.
func (a *Actor) DirectionToOpponent() model.Facing {
	return a.ports.Oracle.DirectionToOpponent()
}

// InAttackRange evaluates the range predicate used when a skill ends.
func (a *Actor) InAttackRange() bool {
	return a.inRange()
}

// SetRangePredicate replaces the attack-vs-move predicate used by EndSkill.
func (a *Actor) SetRangePredicate(fn func() bool) {
	if fn != nil {
		a.inRange = fn
	}
}

// OnDeath registers a hook run once when the actor dies.
func (a *Actor) OnDeath(fn func()) {
	a.sm.OnDeath(fn)
}

// SetState moves the actor to Idle, Move or Attack. Skill states are entered only
// through the engine and Death only through damage, so those are refused, as is
// any change while a skill window is open.
func (a *Actor) SetState(s model.CombatState) bool {
	switch s {
	case model.StateIdle, model.StateMove, model.StateAttack:
	default:
		return false
	}
	if a.engine.IsActive() {
		return false
	}
	return a.sm.SetState(s)
}

// SetMoveDirection sets the requested horizontal direction; the sign is what counts.
func (a *Actor) SetMoveDirection(dir float64) {
	switch {
	case dir > 0:
		a.moveDir = 1
	case dir < 0:
		a.moveDir = -1
	default:
		a.moveDir = 0
	}
	if a.moveDir != 0 {
		a.facing = model.FacingOf(a.moveDir, a.facing)
	}
}

// Face turns the actor.
func (a *Actor) Face(f model.Facing) {
	a.facing = f
}

// FaceOpponent turns the actor toward the opponent.
func (a *Actor) FaceOpponent() {
	a.facing = a.ports.Oracle.DirectionToOpponent()
}

// SetBaseAttackCooldown changes the basic attack cooldown used by the next reset.
// While rapid shot is open the running base is halved and the window still
// restores the value it saw at activation.
func (a *Actor) SetBaseAttackCooldown(v float64) {
	a.baseAttackCooldown = max(v, 0)
	if w := a.engine.win; w != nil && w.ability.Kind == KindRapidShot {
		a.attackCooldown.SetBase(a.baseAttackCooldown / 2)
		return
	}
	a.attackCooldown.SetBase(a.baseAttackCooldown)
}

// BaseAttackCooldown returns the configured basic attack cooldown.
func (a *Actor) BaseAttackCooldown() float64 { return a.baseAttackCooldown }

// TakeDamage applies damage and returns the amount actually removed.
// Reaching zero moves the actor to Death; further damage has no effect.
func (a *Actor) TakeDamage(amount int32) int32 {
	if a.IsDead() {
		return 0
	}
	applied := a.health.Damage(amount)
	if a.health.IsDepleted() {
		a.die()
	}
	return applied
}

// Kill sets health to zero and enters Death.
func (a *Actor) Kill() {
	if a.IsDead() {
		return
	}
	a.health.Damage(a.health.Current())
	a.die()
}

func (a *Actor) die() {
	if a.sm.SetState(model.StateDeath) {
		slog.Info("actor died",
			"actor", a.id,
			"kind", a.kind)
	}
}

// onDeath drops any in-flight skill without ending it and stops movement.
func (a *Actor) onDeath() {
	a.engine.Cancel()
	a.moveDir = 0
	a.stopHorizontal()
}

// Tick advances the actor by dt seconds: cooldowns, the open effect window,
// basic attack discharge and locomotion.
func (a *Actor) Tick(dt float64) {
	if a.IsDead() || dt <= 0 {
		return
	}

	a.attackCooldown.Tick(dt)
	for i := range a.skillCooldowns {
		a.skillCooldowns[i].Tick(dt)
	}

	a.engine.Tick(dt)
	if a.IsDead() {
		return
	}

	state := a.State()
	// A standing speed boost keeps shooting like Attack.
	shooting := state == model.StateAttack || (state == model.StateSkill4Active && a.moveDir == 0)
	if shooting || (state.IsSkillActive() && state != model.StateSkill4Active) {
		a.FaceOpponent()
	}
	if shooting {
		a.fireBasic()
	}
	a.applyLocomotion(state)
}

// fireBasic discharges one basic arrow when the attack cooldown allows.
func (a *Actor) fireBasic() bool {
	if !a.attackCooldown.IsReady() {
		return false
	}
	a.ports.Spawner.Spawn(model.Launch{
		Kind:         model.LaunchArrow,
		Owner:        a.id,
		AngleDegrees: model.MirrorAngle(a.profile.AttackAngle, a.facing),
		Speed:        a.profile.LaunchSpeed,
		Count:        1,
		Damage:       a.profile.ArrowDamage,
	})
	a.attackCooldown.Start()
	return true
}

func (a *Actor) applyLocomotion(state model.CombatState) {
	vx := 0.0
	switch state {
	case model.StateMove, model.StateSkill4Active:
		vx = a.moveDir * a.moveSpeed
	}
	v := a.ports.Body.Velocity()
	a.ports.Body.SetVelocity(model.Vec2{X: vx, Y: v.Y})
}

func (a *Actor) stopHorizontal() {
	v := a.ports.Body.Velocity()
	a.ports.Body.SetVelocity(model.Vec2{X: 0, Y: v.Y})
}
