package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies a lifecycle transition of one element in one animate call
type Type uint8

const (
	// EventPositioned fires when an element is placed at its source point
	EventPositioned Type = iota + 1
	// EventDispatched fires when an element's trajectory is handed to the consumer
	EventDispatched
	// EventSettled fires once the dispatched trajectory's duration has elapsed
	EventSettled
	// EventSuperseded fires when a pending dispatch is dropped by a newer call
	EventSuperseded
)

var typeNames = map[Type]string{
	EventPositioned: "positioned",
	EventDispatched: "dispatched",
	EventSettled:    "settled",
	EventSuperseded: "superseded",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Event is one lifecycle notification
type Event struct {
	Type  Type
	Call  uuid.UUID // Animate call the element belongs to
	Index int       // Element index within the call
	Count int       // Element count of the call
	At    time.Time // Scheduler time the transition happened
}
