package match

import (
	"math/rand/v2"

	"github.com/udisondev/archerduel/internal/ai"
	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

// AutoPilot is a scripted player: it keeps the opponent inside a distance band
// and fires ready skills at random moments.
type AutoPilot struct {
	probe ai.TerrainProbe
	rng   *rand.Rand

	// MinDistance and MaxDistance bound the band the pilot tries to hold.
	MinDistance float64
	MaxDistance float64
	// SkillRate is the expected number of skill attempts per second.
	SkillRate float64
}

// NewAutoPilot creates a pilot that never walks off a ledge reported by probe.
func NewAutoPilot(probe ai.TerrainProbe, rng *rand.Rand) *AutoPilot {
	return &AutoPilot{
		probe:       probe,
		rng:         rng,
		MinDistance: 1.5,
		MaxDistance: 3.5,
		SkillRate:   0.5,
	}
}

// Drive implements PlayerInput.
func (p *AutoPilot) Drive(pc *combat.PlayerController, dt float64) {
	a := pc.Actor()
	if a.IsDead() {
		return
	}

	toward := a.DirectionToOpponent()
	dir := 0.0
	switch dist := a.DistanceToOpponent(); {
	case dist > p.MaxDistance:
		dir = toward.Sign()
	case dist < p.MinDistance:
		dir = toward.Reverse().Sign()
	}
	if dir != 0 && p.probe != nil && !p.probe.GroundAhead(a.Position(), model.FacingOf(dir, toward)) {
		dir = 0
	}
	if dir != a.MoveDirection() {
		pc.Move(dir)
	}

	if a.Engine().IsActive() {
		return
	}
	ready := a.ReadySet()
	if len(ready) == 0 || p.rng.Float64() >= p.SkillRate*dt {
		return
	}
	a.FaceOpponent()
	pc.UseSkill(ready[p.rng.IntN(len(ready))])
}
