package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

// TerrainProbe answers whether there is ground ahead of a position.
// Injected by the arena so the scheduler never walks off a ledge.
type TerrainProbe interface {
	GroundAhead(pos model.Vec2, dir model.Facing) bool
}

// Config holds the scheduler tunables.
type Config struct {
	DetectRange            float64
	AttackRange            float64
	PatrolMin              float64
	PatrolMax              float64
	AttackMin              float64
	AttackMax              float64
	PostActionPatrolChance float64
	BoundMinX              float64
	BoundMaxX              float64
}

// DefaultConfig returns the enemy archer tunables.
func DefaultConfig() Config {
	return Config{
		DetectRange:            5,
		AttackRange:            2,
		PatrolMin:              2,
		PatrolMax:              5,
		AttackMin:              1,
		AttackMax:              2,
		PostActionPatrolChance: 0.3,
		BoundMinX:              -10,
		BoundMaxX:              10,
	}
}

// Scheduler is the enemy decision loop.
// Phases: IDLE (deciding) → PATROL | ATTACK | CAST → IDLE, and DEAD once the actor dies.
// Each phase is an elapsed-time counter advanced by Tick; CAST suspends until the
// actor's skill window closes.
type Scheduler struct {
	actor *combat.Actor
	cfg   Config
	rng   *rand.Rand
	probe TerrainProbe

	isRunning atomic.Bool
	phase     model.Intention
	remaining float64
	patrolDir model.Facing
}

// NewScheduler creates a scheduler for actor. rng must not be shared with
// another goroutine; probe may be nil.
func NewScheduler(actor *combat.Actor, cfg Config, rng *rand.Rand, probe TerrainProbe) *Scheduler {
	s := &Scheduler{
		actor:     actor,
		cfg:       cfg,
		rng:       rng,
		probe:     probe,
		phase:     model.IntentionIdle,
		patrolDir: model.FacingRight,
	}
	actor.SetRangePredicate(func() bool {
		return actor.DistanceToOpponent() <= cfg.AttackRange
	})
	actor.OnDeath(s.teardown)
	return s
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	if s.phase == model.IntentionDead {
		return
	}
	s.isRunning.Store(true)

	if IsDebugEnabled() {
		slog.Debug("scheduler started",
			"actor", s.actor.ID(),
			"phase", s.phase)
	}
}

// Stop stops the scheduler and halts the actor.
func (s *Scheduler) Stop() {
	if !s.isRunning.Swap(false) {
		return
	}
	s.actor.SetMoveDirection(0)

	if IsDebugEnabled() {
		slog.Debug("scheduler stopped", "actor", s.actor.ID())
	}
}

// SetIntention forces the phase. DEAD is sticky.
func (s *Scheduler) SetIntention(intention model.Intention) {
	if s.phase == model.IntentionDead || s.phase == intention {
		return
	}
	old := s.phase
	s.phase = intention

	if IsDebugEnabled() {
		slog.Debug("scheduler phase changed",
			"actor", s.actor.ID(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention returns the current phase.
func (s *Scheduler) CurrentIntention() model.Intention {
	return s.phase
}

// Remaining returns the time left in a timed phase.
func (s *Scheduler) Remaining() float64 {
	return s.remaining
}

// PatrolDirection returns the current patrol direction.
func (s *Scheduler) PatrolDirection() model.Facing {
	return s.patrolDir
}

// Tick advances the scheduler by dt seconds.
func (s *Scheduler) Tick(dt float64) {
	if !s.isRunning.Load() {
		return
	}
	if s.actor.IsDead() {
		s.teardown()
		return
	}

	switch s.phase {
	case model.IntentionCast:
		if s.actor.Engine().IsActive() {
			return
		}
		s.afterAction()
	case model.IntentionPatrol:
		s.thinkPatrol(dt)
	case model.IntentionAttack:
		s.remaining -= dt
		if s.remaining <= 0 {
			s.afterAction()
		}
	case model.IntentionIdle:
		s.decide()
	}
}

// teardown is idempotent; no phase starts afterwards.
func (s *Scheduler) teardown() {
	if s.phase == model.IntentionDead {
		return
	}
	s.isRunning.Store(false)
	s.SetIntention(model.IntentionDead)
	s.remaining = 0

	if IsDebugEnabled() {
		slog.Debug("scheduler torn down", "actor", s.actor.ID())
	}
}

// decide picks the next phase from the distance to the opponent.
func (s *Scheduler) decide() {
	dist := s.actor.DistanceToOpponent()
	if dist <= s.cfg.DetectRange && dist <= s.cfg.AttackRange {
		s.engage()
		return
	}
	s.startPatrol()
}

// engage tries a weighted skill and falls back to a plain attack.
func (s *Scheduler) engage() {
	ready := s.actor.ReadySet()
	if len(ready) == 0 {
		s.startAttack()
		return
	}

	id := Select(s.rng, ready, s.actor.Registry().Weights())
	if id < 0 {
		s.startAttack()
		return
	}

	s.actor.FaceOpponent()
	if !s.actor.Engine().TryActivate(id) {
		s.startAttack()
		return
	}
	s.remaining = 0
	s.SetIntention(model.IntentionCast)

	if IsDebugEnabled() {
		slog.Debug("scheduler cast skill",
			"actor", s.actor.ID(),
			"ability", id,
			"ready", ready)
	}
}

// afterAction follows a cast or attack phase with a forced patrol at the
// configured chance; otherwise the next tick decides again.
func (s *Scheduler) afterAction() {
	if s.rng.Float64() < s.cfg.PostActionPatrolChance {
		s.startPatrol()
		return
	}
	s.remaining = 0
	s.SetIntention(model.IntentionIdle)
	s.decide()
}

func (s *Scheduler) startAttack() {
	s.actor.SetMoveDirection(0)
	s.actor.SetState(model.StateAttack)
	s.actor.FaceOpponent()
	s.remaining = s.uniform(s.cfg.AttackMin, s.cfg.AttackMax)
	s.SetIntention(model.IntentionAttack)
}

func (s *Scheduler) startPatrol() {
	s.patrolDir = model.FacingRight
	if s.rng.IntN(2) == 0 {
		s.patrolDir = model.FacingLeft
	}
	s.actor.SetState(model.StateMove)
	s.actor.SetMoveDirection(s.patrolDir.Sign())
	s.remaining = s.uniform(s.cfg.PatrolMin, s.cfg.PatrolMax)
	s.SetIntention(model.IntentionPatrol)
}

// thinkPatrol walks, reversing at the arena bounds or a ledge.
func (s *Scheduler) thinkPatrol(dt float64) {
	pos := s.actor.Position()
	blocked := (s.patrolDir == model.FacingRight && pos.X >= s.cfg.BoundMaxX) ||
		(s.patrolDir == model.FacingLeft && pos.X <= s.cfg.BoundMinX) ||
		(s.probe != nil && !s.probe.GroundAhead(pos, s.patrolDir))
	if blocked {
		s.patrolDir = s.patrolDir.Reverse()
	}
	s.actor.SetMoveDirection(s.patrolDir.Sign())

	s.remaining -= dt
	if s.remaining <= 0 {
		s.actor.SetMoveDirection(0)
		s.remaining = 0
		s.SetIntention(model.IntentionIdle)
		s.decide()
	}
}

// uniform returns a value in [lo, hi].
func (s *Scheduler) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Select draws one id from ready with probability proportional to its weight:
// r ~ U(0,W), walking ids in ascending order until the running sum reaches r.
// Returns -1 when every ready weight is zero.
func Select(rng *rand.Rand, ready []int, weights [combat.AbilityCount]float64) int {
	total := 0.0
	for _, id := range ready {
		total += weights[id]
	}
	if total <= 0 {
		return -1
	}

	r := rng.Float64() * total
	sum := 0.0
	last := -1
	for _, id := range ready {
		w := weights[id]
		if w <= 0 {
			continue
		}
		sum += w
		last = id
		if r <= sum {
			return id
		}
	}
	return last
}
