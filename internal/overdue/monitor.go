package overdue

import (
	"time"

	"restaurant-pos/internal/models"
)

// DefaultThreshold is how long an order may sit in pending or preparing
// before it is flagged for attention.
const DefaultThreshold = 15 * time.Minute

// IsOverdue reports whether an active order has exceeded the threshold.
// Only pending and preparing orders count; ready and terminal orders are
// never overdue. Deterministic given its clock input.
func IsOverdue(order models.Order, now time.Time, threshold time.Duration) bool {
	if order.Status != models.StatusPending && order.Status != models.StatusPreparing {
		return false
	}
	return now.Sub(order.CreatedAt) > threshold
}

// Monitor binds a threshold and a clock so callers such as the kitchen
// display can re-derive overdue state on every refresh. It holds no timers
// or background tasks.
type Monitor struct {
	Threshold time.Duration
	Now       func() time.Time
}

// NewMonitor creates a monitor; a nil clock means the wall clock
func NewMonitor(threshold time.Duration, now func() time.Time) *Monitor {
	if now == nil {
		now = time.Now
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Monitor{Threshold: threshold, Now: now}
}

// Check reports whether the order is overdue right now
func (m *Monitor) Check(order models.Order) bool {
	return IsOverdue(order, m.Now(), m.Threshold)
}
