package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

func TestSelect_WeightedFrequency(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	weights := [combat.AbilityCount]float64{1, 3}
	ready := []int{0, 1}

	const n = 100_000
	hits := 0
	for range n {
		if Select(rng, ready, weights) == 1 {
			hits++
		}
	}

	assert.InDelta(t, 0.75, float64(hits)/n, 0.01)
}

func TestSelect_ZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	tests := []struct {
		name    string
		ready   []int
		weights [combat.AbilityCount]float64
		want    int
	}{
		{"empty ready set", nil, [combat.AbilityCount]float64{1, 1, 1, 1, 1}, -1},
		{"all zero", []int{0, 2}, [combat.AbilityCount]float64{0, 1, 0, 1, 1}, -1},
		{"only one positive", []int{0, 2, 4}, [combat.AbilityCount]float64{0, 0, 0, 0, 2}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 100 {
				assert.Equal(t, tt.want, Select(rng, tt.ready, tt.weights))
			}
		})
	}
}

func TestSelect_OnlyReadyIDs(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	weights := [combat.AbilityCount]float64{0.3, 0.3, 0.3, 0.3, 0.3}

	for range 1000 {
		id := Select(rng, []int{1, 3}, weights)
		assert.Contains(t, []int{1, 3}, id)
	}
}

func TestScheduler_EmptyReadySetAttacks(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg, 1, nil)
	exhaustSkills(t, f.actor)

	f.sched.Tick(0.1)

	assert.Equal(t, model.IntentionAttack, f.sched.CurrentIntention())
	assert.GreaterOrEqual(t, f.sched.Remaining(), cfg.AttackMin)
	assert.LessOrEqual(t, f.sched.Remaining(), cfg.AttackMax)
	assert.Equal(t, model.StateAttack, f.actor.State())
	assert.Equal(t, model.FacingLeft, f.actor.Facing())
}

func TestScheduler_OutOfRangePatrols(t *testing.T) {
	tests := []struct {
		name string
		dist float64
	}{
		{"beyond detection", 8},
		{"detected but out of attack range", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			f := newFixture(t, cfg, 2, nil)
			f.oracle.dist = tt.dist

			f.sched.Tick(0.1)

			assert.Equal(t, model.IntentionPatrol, f.sched.CurrentIntention())
			assert.GreaterOrEqual(t, f.sched.Remaining(), cfg.PatrolMin)
			assert.LessOrEqual(t, f.sched.Remaining(), cfg.PatrolMax)
			assert.Equal(t, model.StateMove, f.actor.State())
			assert.Equal(t, f.sched.PatrolDirection().Sign(), f.actor.MoveDirection())
		})
	}
}

func TestScheduler_CastSuspendsUntilWindowCloses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostActionPatrolChance = 0
	f := newFixture(t, cfg, 3, nil)

	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionCast, f.sched.CurrentIntention())
	id, active := f.actor.Engine().Active()
	require.True(t, active)

	f.sched.Tick(0.1)
	assert.Equal(t, model.IntentionCast, f.sched.CurrentIntention())

	require.True(t, f.actor.Engine().EndSkill(id))
	f.sched.Tick(0.1)

	// the ended skill is cooling down, so the next decision picks another one
	assert.Equal(t, model.IntentionCast, f.sched.CurrentIntention())
	next, active := f.actor.Engine().Active()
	require.True(t, active)
	assert.NotEqual(t, id, next)
	assert.False(t, f.actor.IsSkillReady(id))
}

func TestScheduler_SkillEndUsesConfiguredRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AttackRange = 5
	f := newFixture(t, cfg, 1, nil)
	f.sched.Stop()
	f.oracle.dist = 4
	e := f.actor.Engine()

	require.True(t, e.TryActivate(3))
	require.True(t, e.EndSkill(3))
	assert.Equal(t, model.StateAttack, f.actor.State())

	f.oracle.dist = 6
	require.True(t, e.TryActivate(4))
	require.True(t, e.EndSkill(4))
	assert.Equal(t, model.StateMove, f.actor.State())
}

func TestScheduler_PostActionPatrol(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostActionPatrolChance = 1
	f := newFixture(t, cfg, 4, nil)
	exhaustSkills(t, f.actor)

	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionAttack, f.sched.CurrentIntention())

	f.sched.Tick(cfg.AttackMax)

	assert.Equal(t, model.IntentionPatrol, f.sched.CurrentIntention())
	assert.Equal(t, model.StateMove, f.actor.State())
}

func TestScheduler_AttackRepeatsWithoutPatrolChance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostActionPatrolChance = 0
	f := newFixture(t, cfg, 5, nil)
	exhaustSkills(t, f.actor)

	f.sched.Tick(0.1)
	f.sched.Tick(cfg.AttackMax)

	assert.Equal(t, model.IntentionAttack, f.sched.CurrentIntention())
}

func TestScheduler_PatrolReversesAtBounds(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg, 6, nil)
	f.oracle.dist = 100
	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionPatrol, f.sched.CurrentIntention())

	f.sched.patrolDir = model.FacingRight
	f.body.pos = model.Vec2{X: cfg.BoundMaxX}
	f.sched.Tick(0.1)
	assert.Equal(t, model.FacingLeft, f.sched.PatrolDirection())
	assert.Equal(t, -1.0, f.actor.MoveDirection())

	f.body.pos = model.Vec2{X: cfg.BoundMinX - 1}
	f.sched.Tick(0.1)
	assert.Equal(t, model.FacingRight, f.sched.PatrolDirection())
}

func TestScheduler_PatrolReversesAtLedge(t *testing.T) {
	cfg := DefaultConfig()
	ledgeRight := probeFunc(func(_ model.Vec2, dir model.Facing) bool {
		return dir == model.FacingLeft
	})
	f := newFixture(t, cfg, 7, ledgeRight)
	f.oracle.dist = 100
	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionPatrol, f.sched.CurrentIntention())

	for range 5 {
		f.sched.Tick(0.1)
		assert.Equal(t, model.FacingLeft, f.sched.PatrolDirection())
	}
}

func TestScheduler_PatrolEndsAndDecides(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg, 8, nil)
	f.oracle.dist = 100
	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionPatrol, f.sched.CurrentIntention())

	f.oracle.dist = 1
	exhaustSkills(t, f.actor)
	f.sched.Tick(cfg.PatrolMax)

	assert.Equal(t, model.IntentionAttack, f.sched.CurrentIntention())
	assert.Equal(t, 0.0, f.actor.MoveDirection())
}

func TestScheduler_TeardownOnDeath(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg, 9, nil)
	f.sched.Tick(0.1)
	require.Equal(t, model.IntentionCast, f.sched.CurrentIntention())

	f.actor.TakeDamage(1001)

	assert.Equal(t, model.IntentionDead, f.sched.CurrentIntention())
	assert.False(t, f.actor.Engine().IsActive())

	f.oracle.dist = 100
	for range 10 {
		f.sched.Tick(1)
	}
	f.sched.Start()
	f.sched.Tick(1)
	f.sched.SetIntention(model.IntentionPatrol)

	assert.Equal(t, model.IntentionDead, f.sched.CurrentIntention())
	assert.Equal(t, model.StateDeath, f.actor.State())
}

func TestScheduler_StoppedIgnoresTicks(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 10, nil)
	f.sched.Stop()

	f.sched.Tick(1)

	assert.Equal(t, model.IntentionIdle, f.sched.CurrentIntention())
	assert.Equal(t, model.StateIdle, f.actor.State())
}

func TestScheduler_SkillChoiceFollowsWeights(t *testing.T) {
	// Only abilities 0 and 1 may be chosen; 1 is three times as likely.
	profile := enemyProfile()
	for i := range profile.Abilities {
		profile.Abilities[i].AIWeight = 0
	}
	profile.Abilities[0].AIWeight = 1
	profile.Abilities[1].AIWeight = 3

	rng := rand.New(rand.NewPCG(11, 12))
	counts := [combat.AbilityCount]int{}
	const rounds = 4000
	for range rounds {
		a, err := combat.NewActor("e", combat.ActorEnemy, profile, combat.Ports{Oracle: &fakeOracle{dist: 1}})
		require.NoError(t, err)
		s := NewScheduler(a, DefaultConfig(), rng, nil)
		s.Start()
		s.Tick(0.1)
		id, ok := a.Engine().Active()
		require.True(t, ok)
		counts[id]++
	}

	assert.Zero(t, counts[2]+counts[3]+counts[4])
	assert.InDelta(t, 0.75, float64(counts[1])/rounds, 0.03)
}

func BenchmarkScheduler_Tick(b *testing.B) {
	a, err := combat.NewActor("bench", combat.ActorEnemy, enemyProfile(), combat.Ports{Oracle: &fakeOracle{dist: 1}})
	if err != nil {
		b.Fatal(err)
	}
	s := NewScheduler(a, DefaultConfig(), rand.New(rand.NewPCG(1, 1)), nil)
	s.Start()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		s.Tick(1.0 / 60)
		a.Tick(1.0 / 60)
	}
}
