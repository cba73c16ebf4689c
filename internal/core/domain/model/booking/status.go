package booking

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a booking.
//
// State transitions:
//
//	Pending   --Confirm--> Confirmed
//	Confirmed --PickUp-->  PickedUp
//	PickedUp  --Deliver--> Delivered
//	Pending, Confirmed --Cancel--> Cancelled
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	PickedUp
	Delivered
	Cancelled
)

// Event drives a booking from one Status to the next.
type Event int

const (
	Confirm Event = iota + 1
	PickUp
	Deliver
	Cancel
)

var statusStrings = map[Status]string{
	Pending:   "Pending",
	Confirmed: "Confirmed",
	PickedUp:  "PickedUp",
	Delivered: "Delivered",
	Cancelled: "Cancelled",
}

var eventStrings = map[Event]string{
	Confirm: "Confirm",
	PickUp:  "PickUp",
	Deliver: "Deliver",
	Cancel:  "Cancel",
}

var transitions = kernel.NewTransitionTable("booking", map[kernel.Edge[Status, Event]]Status{
	{From: Pending, Event: Confirm}:  Confirmed,
	{From: Confirmed, Event: PickUp}: PickedUp,
	{From: PickedUp, Event: Deliver}: Delivered,
	{From: Pending, Event: Cancel}:   Cancelled,
	{From: Confirmed, Event: Cancel}: Cancelled,
})

// Transitions returns the booking edge table.
func Transitions() kernel.TransitionTable[Status, Event] {
	return transitions
}

// String returns the status name, or "Unknown".
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects values outside the declared statuses.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Fire returns the status reached from s by event, or an IllegalTransitionError
// naming both.
func (s Status) Fire(event Event) (Status, error) {
	return transitions.Fire(s, event)
}

// IsCommitted reports whether the carrier has taken responsibility for the goods.
// Committed bookings block cancelling their course.
func (s Status) IsCommitted() bool {
	return s == Confirmed || s == PickedUp
}

// String returns the event name, or "Unknown".
func (e Event) String() string {
	if str, ok := eventStrings[e]; ok {
		return str
	}
	return "Unknown"
}
