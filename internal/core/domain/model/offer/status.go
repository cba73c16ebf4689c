package offer

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status is the state of an offer. Only Pending offers move; every other state is final.
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	Rejected
	Expired
)

// Event drives an offer from Pending to one of its final states.
type Event int

const (
	Accept Event = iota + 1
	Reject
	Expire
)

var statusStrings = map[Status]string{
	Pending:  "Pending",
	Accepted: "Accepted",
	Rejected: "Rejected",
	Expired:  "Expired",
}

var eventStrings = map[Event]string{
	Accept: "Accept",
	Reject: "Reject",
	Expire: "Expire",
}

var transitions = kernel.NewTransitionTable("offer", map[kernel.Edge[Status, Event]]Status{
	{From: Pending, Event: Accept}: Accepted,
	{From: Pending, Event: Reject}: Rejected,
	{From: Pending, Event: Expire}: Expired,
})

// Transitions returns the offer edge table.
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

// Fire applies event to s.
func (s Status) Fire(event Event) (Status, error) {
	return transitions.Fire(s, event)
}

// String returns the event name, or "Unknown".
func (e Event) String() string {
	if str, ok := eventStrings[e]; ok {
		return str
	}
	return "Unknown"
}
