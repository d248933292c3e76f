package component

import "github.com/milk9111/brawler/ecs"

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     float64
	Current float64
	// InvulnerableMs is game time left during which damage is ignored.
	InvulnerableMs float64
	Dead           bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage unless invulnerable. Returns true if damage was
// applied.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || h.InvulnerableMs > 0 || amount <= 0 {
		return false
	}
	h.Current = max(h.Current-amount, 0)
	if h.Current == 0 {
		h.Dead = true
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

// Tick counts invulnerability down by dt milliseconds.
func (h *Health) Tick(dt float64) {
	if h == nil || h.InvulnerableMs <= 0 {
		return
	}
	h.InvulnerableMs = max(h.InvulnerableMs-dt, 0)
}

var HealthComponent = ecs.NewComponent[Health]("Health")
