package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

type fakeOracle struct {
	dist float64
}

func (o *fakeOracle) DistanceToOpponent() float64       { return o.dist }
func (o *fakeOracle) DirectionToOpponent() model.Facing { return model.FacingLeft }

type fakeBody struct {
	pos model.Vec2
	vel model.Vec2
}

func (b *fakeBody) SetVelocity(v model.Vec2) { b.vel = v }
func (b *fakeBody) Velocity() model.Vec2     { return b.vel }
func (b *fakeBody) Position() model.Vec2     { return b.pos }

type probeFunc func(pos model.Vec2, dir model.Facing) bool

func (f probeFunc) GroundAhead(pos model.Vec2, dir model.Facing) bool { return f(pos, dir) }

func enemyProfile() combat.Profile {
	return combat.Profile{
		Name:               "enemy",
		MaxHealth:          1000,
		MoveSpeed:          3,
		BaseAttackCooldown: 0.5,
		LaunchSpeed:        8,
		ArrowDamage:        10,
		AttackAngle:        50,
		AttackRange:        2,
		InitialState:       model.StateIdle,
		Abilities: []combat.Ability{
			{ID: 0, BaseCooldown: 10, AIWeight: 0.3, Duration: 3, AngleMin: 30, AngleMax: 60, SpeedModifier: 1.2},
			{ID: 1, BaseCooldown: 3, AIWeight: 0.3, Windup: 0.5, AngleDegrees: 50, SpeedModifier: 0.8, ArrowCount: 10, Spread: 30},
			{ID: 2, BaseCooldown: 8, AIWeight: 0.3, Windup: 0.5, AngleDegrees: 50, SpeedModifier: 1},
			{ID: 3, BaseCooldown: 12, AIWeight: 0.3, Duration: 3, SpeedMultiplier: 2},
			{ID: 4, BaseCooldown: 15, AIWeight: 0.3, Windup: 0.5, Ward: model.Ward{Hits: 100, Duration: 6}},
		},
	}
}

type fixture struct {
	actor  *combat.Actor
	oracle *fakeOracle
	body   *fakeBody
	sched  *Scheduler
}

func newFixture(t *testing.T, cfg Config, seed uint64, probe TerrainProbe) *fixture {
	t.Helper()
	f := &fixture{
		oracle: &fakeOracle{dist: 1},
		body:   &fakeBody{},
	}
	a, err := combat.NewActor("enemy", combat.ActorEnemy, enemyProfile(), combat.Ports{
		Oracle: f.oracle,
		Body:   f.body,
	})
	require.NoError(t, err)
	f.actor = a
	f.sched = NewScheduler(a, cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b9)), probe)
	f.sched.Start()
	return f
}

// exhaustSkills puts every ability on cooldown.
func exhaustSkills(t *testing.T, a *combat.Actor) {
	t.Helper()
	for id := range combat.AbilityCount {
		require.True(t, a.Engine().TryActivate(id))
		require.True(t, a.Engine().EndSkill(id))
	}
	require.Empty(t, a.ReadySet())
}
