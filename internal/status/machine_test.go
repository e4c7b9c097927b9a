package status

import (
	"testing"

	"restaurant-pos/internal/models"
)

func kitchenActor() models.Actor {
	return models.Actor{ID: "k1", Role: "kitchen", Capabilities: []models.Capability{models.CapKitchen}}
}

func cashierActor() models.Actor {
	return models.Actor{ID: "c1", Role: "cashier", Capabilities: []models.Capability{models.CapBilling, models.CapCancel}}
}

func managerActor() models.Actor {
	return models.Actor{ID: "m1", Role: "manager", Capabilities: []models.Capability{
		models.CapKitchen, models.CapBilling, models.CapCancel,
	}}
}

func TestMachine_Transition(t *testing.T) {
	m := NewMachine(DefaultPolicy())

	tests := []struct {
		name        string
		current     models.OrderStatus
		target      models.OrderStatus
		actor       models.Actor
		wantChanged bool
		wantErr     error
	}{
		{
			name:        "pending to preparing",
			current:     models.StatusPending,
			target:      models.StatusPreparing,
			actor:       kitchenActor(),
			wantChanged: true,
		},
		{
			name:        "preparing to ready",
			current:     models.StatusPreparing,
			target:      models.StatusReady,
			actor:       kitchenActor(),
			wantChanged: true,
		},
		{
			name:        "ready to completed",
			current:     models.StatusReady,
			target:      models.StatusCompleted,
			actor:       cashierActor(),
			wantChanged: true,
		},
		{
			name:        "replaying current status is a no-op success",
			current:     models.StatusPreparing,
			target:      models.StatusPreparing,
			actor:       kitchenActor(),
			wantChanged: false,
		},
		{
			name:    "skipping a step fails",
			current: models.StatusPending,
			target:  models.StatusReady,
			actor:   managerActor(),
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "skipping two steps fails",
			current: models.StatusPending,
			target:  models.StatusCompleted,
			actor:   managerActor(),
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "backward transition fails",
			current: models.StatusReady,
			target:  models.StatusPreparing,
			actor:   managerActor(),
			wantErr: ErrInvalidTransition,
		},
		{
			name:        "cancel from pending",
			current:     models.StatusPending,
			target:      models.StatusCancelled,
			actor:       cashierActor(),
			wantChanged: true,
		},
		{
			name:        "cancel from preparing",
			current:     models.StatusPreparing,
			target:      models.StatusCancelled,
			actor:       cashierActor(),
			wantChanged: true,
		},
		{
			name:        "cancel from ready",
			current:     models.StatusReady,
			target:      models.StatusCancelled,
			actor:       cashierActor(),
			wantChanged: true,
		},
		{
			name:    "cancel after completion fails",
			current: models.StatusCompleted,
			target:  models.StatusCancelled,
			actor:   managerActor(),
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "no transition out of cancelled",
			current: models.StatusCancelled,
			target:  models.StatusPreparing,
			actor:   managerActor(),
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cashier cannot advance preparation",
			current: models.StatusPending,
			target:  models.StatusPreparing,
			actor:   cashierActor(),
			wantErr: ErrUnauthorized,
		},
		{
			name:    "kitchen cannot complete",
			current: models.StatusReady,
			target:  models.StatusCompleted,
			actor:   kitchenActor(),
			wantErr: ErrUnauthorized,
		},
		{
			name:    "kitchen cannot cancel",
			current: models.StatusPending,
			target:  models.StatusCancelled,
			actor:   kitchenActor(),
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := m.Transition(tt.current, tt.target, tt.actor)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("Transition() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Transition() unexpected error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("Transition() changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestMachine_FullLifecycle(t *testing.T) {
	m := NewMachine(DefaultPolicy())
	actor := managerActor()

	current := models.StatusPending
	for _, next := range []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCompleted} {
		changed, err := m.Transition(current, next, actor)
		if err != nil {
			t.Fatalf("Transition(%s -> %s) failed: %v", current, next, err)
		}
		if !changed {
			t.Fatalf("Transition(%s -> %s) reported no change", current, next)
		}
		current = next
	}
}

func TestMachine_EmptyPolicySkipsAuthorization(t *testing.T) {
	m := NewMachine(Policy{})
	nobody := models.Actor{ID: "anon"}

	changed, err := m.Transition(models.StatusPending, models.StatusPreparing, nobody)
	if err != nil {
		t.Fatalf("Transition() unexpected error = %v", err)
	}
	if !changed {
		t.Error("Transition() should report a change")
	}
}
