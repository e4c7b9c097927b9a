package models

// Capability names an action an actor is allowed to perform on orders.
// The role-to-capability mapping is external policy, supplied by configuration.
type Capability string

const (
	CapKitchen Capability = "kitchen"
	CapBilling Capability = "billing"
	CapCancel  Capability = "cancel"
)

// Actor identifies the terminal or user requesting an operation
type Actor struct {
	ID           string       `json:"id"`
	Role         string       `json:"role"`
	Capabilities []Capability `json:"capabilities"`
}

// Can reports whether the actor holds the given capability
func (a Actor) Can(c Capability) bool {
	for _, cap := range a.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}
