package overdue

import (
	"testing"
	"time"

	"restaurant-pos/internal/models"
)

func TestIsOverdue(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	threshold := 15 * time.Minute

	tests := []struct {
		name    string
		status  models.OrderStatus
		elapsed time.Duration
		want    bool
	}{
		{
			name:    "pending just past the threshold",
			status:  models.StatusPending,
			elapsed: 15*time.Minute + time.Millisecond,
			want:    true,
		},
		{
			name:    "pending just under the threshold",
			status:  models.StatusPending,
			elapsed: 15*time.Minute - time.Millisecond,
			want:    false,
		},
		{
			name:    "exactly at the threshold is not overdue",
			status:  models.StatusPending,
			elapsed: 15 * time.Minute,
			want:    false,
		},
		{
			name:    "preparing past the threshold",
			status:  models.StatusPreparing,
			elapsed: 20 * time.Minute,
			want:    true,
		},
		{
			name:    "ready orders never count",
			status:  models.StatusReady,
			elapsed: 20 * time.Minute,
			want:    false,
		},
		{
			name:    "completed orders never count",
			status:  models.StatusCompleted,
			elapsed: time.Hour,
			want:    false,
		},
		{
			name:    "cancelled orders never count",
			status:  models.StatusCancelled,
			elapsed: time.Hour,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := models.Order{Status: tt.status, CreatedAt: createdAt}
			now := createdAt.Add(tt.elapsed)

			if got := IsOverdue(order, now, threshold); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonitor_CheckUsesInjectedClock(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(16 * time.Minute)

	m := NewMonitor(DefaultThreshold, func() time.Time { return now })
	order := models.Order{Status: models.StatusPending, CreatedAt: createdAt}

	if !m.Check(order) {
		t.Error("Check() = false, want true with a clock 16 minutes after creation")
	}
}

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(0, nil)

	if m.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", m.Threshold, DefaultThreshold)
	}
	if m.Now == nil {
		t.Error("Now should default to the wall clock")
	}
}
