package model

// Cooldown tracks the remaining time until an ability can be used again.
// Readiness is a predicate; nothing is raised when Remaining reaches zero.
type Cooldown struct {
	remaining float64
	base      float64
}

// NewCooldown creates a ready cooldown with the given base duration.
func NewCooldown(base float64) Cooldown {
	return Cooldown{base: max(base, 0)}
}

// Tick subtracts dt from the remaining time, clamping at zero.
// Non-positive dt is ignored.
func (c *Cooldown) Tick(dt float64) {
	if dt <= 0 || c.remaining <= 0 {
		return
	}
	c.remaining -= dt
	if c.remaining < 0 {
		c.remaining = 0
	}
}

// IsReady reports whether the cooldown has fully elapsed.
func (c Cooldown) IsReady() bool {
	return c.remaining <= 0
}

// Arm sets the remaining time unconditionally.
func (c *Cooldown) Arm(duration float64) {
	c.remaining = max(duration, 0)
}

// Start arms the cooldown with its current base.
func (c *Cooldown) Start() {
	c.Arm(c.base)
}

// Reset makes the cooldown ready immediately.
func (c *Cooldown) Reset() {
	c.remaining = 0
}

// Remaining returns the time left until ready.
func (c Cooldown) Remaining() float64 {
	return c.remaining
}

// Base returns the duration used by Start.
func (c Cooldown) Base() float64 {
	return c.base
}

// SetBase substitutes the duration used by the next Start.
// The running countdown is left untouched.
func (c *Cooldown) SetBase(base float64) {
	c.base = max(base, 0)
}
