package status

import (
	"errors"

	"restaurant-pos/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor lacks capability for this transition")
)

// Policy maps a target status to the capability required to reach it.
// The concrete role-to-capability assignment is configuration, not engine logic.
type Policy map[models.OrderStatus]models.Capability

// DefaultPolicy requires kitchen capability to advance preparation,
// billing capability to complete, and cancel capability to cancel.
func DefaultPolicy() Policy {
	return Policy{
		models.StatusPreparing: models.CapKitchen,
		models.StatusReady:     models.CapKitchen,
		models.StatusCompleted: models.CapBilling,
		models.StatusCancelled: models.CapCancel,
	}
}

// rank orders the main path pending -> preparing -> ready -> completed
var rank = map[models.OrderStatus]int{
	models.StatusPending:   0,
	models.StatusPreparing: 1,
	models.StatusReady:     2,
	models.StatusCompleted: 3,
}

// Machine validates order lifecycle transitions
type Machine struct {
	policy Policy
}

// NewMachine creates a machine with the given capability policy
func NewMachine(policy Policy) *Machine {
	return &Machine{policy: policy}
}

// Transition validates moving an order from current to target on behalf of
// actor. It returns changed=false for an idempotent replay (target equals
// current), which callers must treat as success without mutating anything.
//
// Valid moves are single forward steps along the main path, plus a cancel
// from any non-terminal state. Backward and skipped-forward moves fail.
func (m *Machine) Transition(current, target models.OrderStatus, actor models.Actor) (changed bool, err error) {
	if current == target {
		return false, nil
	}

	if current.Terminal() {
		return false, ErrInvalidTransition
	}

	if target == models.StatusCancelled {
		if err := m.authorize(target, actor); err != nil {
			return false, err
		}
		return true, nil
	}

	curRank, ok := rank[current]
	if !ok {
		return false, ErrInvalidTransition
	}
	tgtRank, ok := rank[target]
	if !ok {
		return false, ErrInvalidTransition
	}
	if tgtRank != curRank+1 {
		return false, ErrInvalidTransition
	}

	if err := m.authorize(target, actor); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Machine) authorize(target models.OrderStatus, actor models.Actor) error {
	required, ok := m.policy[target]
	if !ok {
		return nil
	}
	if !actor.Can(required) {
		return ErrUnauthorized
	}
	return nil
}
