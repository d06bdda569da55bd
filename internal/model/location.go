package model

import "math"

// Vec2 is a point or vector in arena space (x to the right, y up).
// Value type, passed by value.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// Len returns the euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo returns the euclidean distance to o.
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Facing is the horizontal direction an actor looks at.
type Facing int8

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Sign returns +1 or -1.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Reverse returns the opposite direction.
func (f Facing) Reverse() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// FacingOf returns the facing for a horizontal delta; zero keeps fallback.
func FacingOf(dx float64, fallback Facing) Facing {
	switch {
	case dx > 0:
		return FacingRight
	case dx < 0:
		return FacingLeft
	default:
		return fallback
	}
}

// MirrorAngle maps an angle authored for a right-facing archer to the given facing.
func MirrorAngle(angleDegrees float64, f Facing) float64 {
	if f == FacingLeft {
		return 180 - angleDegrees
	}
	return angleDegrees
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "LEFT"
	}
	return "RIGHT"
}
