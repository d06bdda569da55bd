package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/archerduel/internal/model"
)

type fakeOracle struct {
	dist float64
	dir  model.Facing
}

func (o *fakeOracle) DistanceToOpponent() float64       { return o.dist }
func (o *fakeOracle) DirectionToOpponent() model.Facing { return o.dir }

type recorder struct {
	states   []model.CombatState
	launches []model.Launch
}

func (r *recorder) OnStateChanged(_ string, s model.CombatState) { r.states = append(r.states, s) }
func (r *recorder) Spawn(l model.Launch)                        { r.launches = append(r.launches, l) }

func testAbilities() []Ability {
	return []Ability{
		{ID: 0, BaseCooldown: 10, AIWeight: 0.3, Duration: 3, AngleMin: 30, AngleMax: 60, SpeedModifier: 1.1},
		{ID: 1, BaseCooldown: 3, AIWeight: 0.3, Windup: 0.5, AngleDegrees: 50, SpeedModifier: 1, ArrowCount: 10, Spread: 30},
		{ID: 2, BaseCooldown: 8, AIWeight: 0.3, Windup: 0.5, AngleDegrees: 50, SpeedModifier: 1,
			Fire: model.GroundFire{DamagePerTick: 5, TickInterval: 1, Duration: 2}},
		{ID: 3, BaseCooldown: 12, AIWeight: 0.3, Duration: 6, SpeedMultiplier: 1.5},
		{ID: 4, BaseCooldown: 15, AIWeight: 0.3, Windup: 0.5, Ward: model.Ward{Hits: 100, Duration: 6}},
	}
}

func testProfile() Profile {
	return Profile{
		Name:               "archer",
		MaxHealth:          100,
		MoveSpeed:          4,
		BaseAttackCooldown: 0.5,
		LaunchSpeed:        10,
		ArrowDamage:        10,
		AttackAngle:        50,
		AttackRange:        2,
		InitialState:       model.StateAttack,
		Abilities:          testAbilities(),
	}
}

type fixture struct {
	actor  *Actor
	oracle *fakeOracle
	rec    *recorder
	body   *staticBody
}

func newFixture(t *testing.T, mutate ...func(*Profile)) *fixture {
	t.Helper()
	p := testProfile()
	for _, m := range mutate {
		m(&p)
	}
	f := &fixture{
		oracle: &fakeOracle{dist: 1, dir: model.FacingRight},
		rec:    &recorder{},
		body:   &staticBody{},
	}
	a, err := NewActor("p1", ActorPlayer, p, Ports{
		Presenter: f.rec,
		Spawner:   f.rec,
		Oracle:    f.oracle,
		Body:      f.body,
	})
	require.NoError(t, err)
	f.actor = a
	return f
}
