package combat

import "github.com/udisondev/archerduel/internal/model"

// Presenter receives state changes. Fire-and-forget: the core never waits for it.
type Presenter interface {
	OnStateChanged(actorID string, state model.CombatState)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(actorID string, state model.CombatState)

func (f PresenterFunc) OnStateChanged(actorID string, state model.CombatState) { f(actorID, state) }

// Spawner creates projectiles, fire arrows and wards from launch parameters.
type Spawner interface {
	Spawn(l model.Launch)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(l model.Launch)

func (f SpawnerFunc) Spawn(l model.Launch) { f(l) }

// RangeOracle answers read-only questions about the opponent.
// Supplied by the embedding layer.
type RangeOracle interface {
	DistanceToOpponent() float64
	DirectionToOpponent() model.Facing
}

// Body is the movement port. The core computes intended horizontal velocity;
// physics integration happens elsewhere.
type Body interface {
	SetVelocity(v model.Vec2)
	Velocity() model.Vec2
	Position() model.Vec2
}

// Ports bundles the collaborators of one actor. Nil members are replaced by no-ops.
type Ports struct {
	Presenter Presenter
	Spawner   Spawner
	Oracle    RangeOracle
	Body      Body
}

func (p Ports) withDefaults() Ports {
	if p.Presenter == nil {
		p.Presenter = PresenterFunc(func(string, model.CombatState) {})
	}
	if p.Spawner == nil {
		p.Spawner = SpawnerFunc(func(model.Launch) {})
	}
	if p.Oracle == nil {
		p.Oracle = farAway{}
	}
	if p.Body == nil {
		p.Body = &staticBody{}
	}
	return p
}

// farAway is an oracle for an actor with no opponent.
type farAway struct{}

func (farAway) DistanceToOpponent() float64 { return maxDistance }
func (farAway) DirectionToOpponent() model.Facing { return model.FacingRight }

const maxDistance = 1e9

// staticBody remembers the last velocity and never moves.
type staticBody struct {
	pos model.Vec2
	vel model.Vec2
}

func (b *staticBody) SetVelocity(v model.Vec2) { b.vel = v }
func (b *staticBody) Velocity() model.Vec2 { return b.vel }
func (b *staticBody) Position() model.Vec2 { return b.pos }
