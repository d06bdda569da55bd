package arena

import (
	"github.com/jakecoffman/cp"

	"github.com/udisondev/archerduel/internal/combat"
	"github.com/udisondev/archerduel/internal/model"
)

var (
	_ combat.Body        = (*Handle)(nil)
	_ combat.RangeOracle = (*Handle)(nil)
	_ combat.Spawner     = (*Handle)(nil)
)

// Handle is one side's view of the world: its body, its opponent and its spawner.
type Handle struct {
	world   *World
	side    Side
	body    *cp.Body
	shape   *cp.Shape
	facing  model.Facing
	ownerID string
	target  Target
}

// Side returns the side this handle belongs to.
func (h *Handle) Side() Side { return h.side }

// Ports returns the combat ports backed by this handle.
func (h *Handle) Ports(presenter combat.Presenter) combat.Ports {
	return combat.Ports{
		Presenter: presenter,
		Spawner:   h,
		Oracle:    h,
		Body:      h,
	}
}

// SetVelocity sets the body velocity and remembers the horizontal facing.
func (h *Handle) SetVelocity(v model.Vec2) {
	h.facing = model.FacingOf(v.X, h.facing)
	h.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

// Velocity returns the body velocity.
func (h *Handle) Velocity() model.Vec2 {
	v := h.body.Velocity()
	return model.Vec2{X: v.X, Y: v.Y}
}

// Position returns the body center.
func (h *Handle) Position() model.Vec2 {
	p := h.body.Position()
	return model.Vec2{X: p.X, Y: p.Y}
}

// Teleport moves the body and stops it.
func (h *Handle) Teleport(pos model.Vec2) {
	h.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	h.body.SetVelocityVector(cp.Vector{})
}

// DistanceToOpponent returns the center distance to the other side.
func (h *Handle) DistanceToOpponent() float64 {
	return h.Position().DistanceTo(h.world.sides[h.side.opponent()].Position())
}

// DirectionToOpponent returns the facing toward the other side.
func (h *Handle) DirectionToOpponent() model.Facing {
	dx := h.world.sides[h.side.opponent()].Position().X - h.Position().X
	return model.FacingOf(dx, h.facing)
}

// Spawn launches arrows or places a ward for this side.
func (h *Handle) Spawn(l model.Launch) {
	if l.AngleDegrees > 90 && l.AngleDegrees < 270 {
		h.facing = model.FacingLeft
	} else if l.Kind != model.LaunchWard {
		h.facing = model.FacingRight
	}
	h.world.spawn(h.side, l)
}

// GroundAhead casts a short ray down in front of the feet and reports whether
// it meets the ground.
func (h *Handle) GroundAhead(pos model.Vec2, dir model.Facing) bool {
	geo := h.world.geo
	start := cp.Vector{
		X: pos.X + dir.Sign()*(geo.ActorWidth/2+geo.LedgeProbeAhead),
		Y: pos.Y - geo.ActorHeight/2 + 0.05,
	}
	end := cp.Vector{X: start.X, Y: start.Y - geo.LedgeProbeDepth}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, groundCategory)

	info := h.world.space.SegmentQueryFirst(start, end, 0, filter)
	return info.Shape != nil
}
