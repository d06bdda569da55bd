package model

// Health holds current and maximum hit points.
// Invariant: 0 <= Current <= Max.
type Health struct {
	current int32
	max     int32
}

// NewHealth creates full health. Non-positive max yields a dead pool.
func NewHealth(maxHP int32) Health {
	maxHP = max(maxHP, 0)
	return Health{current: maxHP, max: maxHP}
}

// Current returns current hit points.
func (h Health) Current() int32 { return h.current }

// Max returns maximum hit points.
func (h Health) Max() int32 { return h.max }

// IsDepleted reports whether current hit points reached zero.
func (h Health) IsDepleted() bool { return h.current <= 0 }

// Ratio returns current/max in [0,1].
func (h Health) Ratio() float64 {
	if h.max <= 0 {
		return 0
	}
	return float64(h.current) / float64(h.max)
}

// Damage subtracts amount, clamping at zero.
// Returns the hit points actually removed.
func (h *Health) Damage(amount int32) int32 {
	if amount <= 0 || h.current <= 0 {
		return 0
	}
	if amount > h.current {
		amount = h.current
	}
	h.current -= amount
	return amount
}

// Heal adds amount, clamping at max. Depleted health is not restored.
func (h *Health) Heal(amount int32) int32 {
	if amount <= 0 || h.current <= 0 {
		return 0
	}
	if h.current+amount > h.max {
		amount = h.max - h.current
	}
	h.current += amount
	return amount
}
