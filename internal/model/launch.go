package model

// LaunchKind tells the spawner what to create.
type LaunchKind int32

const (
	// LaunchArrow - plain arrow(s)
	LaunchArrow LaunchKind = iota
	// LaunchFireArrow - arrow that leaves a ground fire where it lands
	LaunchFireArrow
	// LaunchWard - stationary shield placed at the caster
	LaunchWard
)

func (k LaunchKind) String() string {
	switch k {
	case LaunchArrow:
		return "ARROW"
	case LaunchFireArrow:
		return "FIRE_ARROW"
	case LaunchWard:
		return "WARD"
	default:
		return "UNKNOWN"
	}
}

// GroundFire describes the area left by a fire arrow.
type GroundFire struct {
	DamagePerTick int32
	TickInterval  float64
	Duration      float64
}

// Ward describes a shield that absorbs opponent arrows.
type Ward struct {
	Hits     int32
	Duration float64
}

// Launch is the numeric contract handed to the projectile spawner.
// For Count == 1 with Spread > 0 the spawner picks an angle uniformly in
// [AngleDegrees-Spread/2, AngleDegrees+Spread/2]; for Count > 1 the arrows
// are spaced evenly over the same interval.
type Launch struct {
	Kind         LaunchKind
	Owner        string
	AngleDegrees float64
	Speed        float64
	Count        int
	Spread       float64
	Damage       int32
	Fire         GroundFire
	Ward         Ward
}

// Angles expands the launch into individual arrow angles.
// pick is used for single randomized arrows and must return a value in [0,1).
func (l Launch) Angles(pick func() float64) []float64 {
	count := max(l.Count, 1)
	if count == 1 {
		if l.Spread <= 0 || pick == nil {
			return []float64{l.AngleDegrees}
		}
		return []float64{l.AngleDegrees - l.Spread/2 + pick()*l.Spread}
	}
	start := l.AngleDegrees - l.Spread/2
	step := l.Spread / float64(count-1)
	out := make([]float64, count)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
