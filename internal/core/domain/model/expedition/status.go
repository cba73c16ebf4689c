package expedition

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of an expedition.
//
// State transitions:
//
//	Draft          --Publish-->      Published
//	Published      --ReceiveOffer--> OffersReceived (repeatable)
//	Published      --Assign-->       Assigned
//	OffersReceived --Assign-->       Assigned
//	Assigned       --Complete-->     Completed
//	Draft, Published, OffersReceived --Cancel--> Cancelled
//
// Completed and Cancelled are final.
type Status int

const (
	Unknown Status = iota
	Draft
	Published
	OffersReceived
	Assigned
	Completed
	Cancelled
)

// Event is a request to move an expedition along its state machine.
type Event int

const (
	Publish Event = iota + 1
	ReceiveOffer
	Assign
	Complete
	Cancel
)

var statusStrings = map[Status]string{
	Draft:          "Draft",
	Published:      "Published",
	OffersReceived: "OffersReceived",
	Assigned:       "Assigned",
	Completed:      "Completed",
	Cancelled:      "Cancelled",
}

var eventStrings = map[Event]string{
	Publish:      "Publish",
	ReceiveOffer: "ReceiveOffer",
	Assign:       "Assign",
	Complete:     "Complete",
	Cancel:       "Cancel",
}

var transitions = kernel.NewTransitionTable("expedition", map[kernel.Edge[Status, Event]]Status{
	{From: Draft, Event: Publish}:               Published,
	{From: Published, Event: ReceiveOffer}:      OffersReceived,
	{From: OffersReceived, Event: ReceiveOffer}: OffersReceived,
	{From: Published, Event: Assign}:            Assigned,
	{From: OffersReceived, Event: Assign}:       Assigned,
	{From: Assigned, Event: Complete}:           Completed,
	{From: Draft, Event: Cancel}:                Cancelled,
	{From: Published, Event: Cancel}:            Cancelled,
	{From: OffersReceived, Event: Cancel}:       Cancelled,
})

// Transitions exposes the edge table, mainly for tests and documentation.
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

// Validate rejects Unknown and out-of-range values, e.g. read from storage.
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

// IsOpen reports whether the expedition is listed to carriers and accepts offers.
func (s Status) IsOpen() bool {
	return s == Published || s == OffersReceived
}

// IsEditable reports whether the sender may still change or delete the expedition.
func (s Status) IsEditable() bool {
	return s == Draft || s == Published
}

// String returns the event name, or "Unknown".
func (e Event) String() string {
	if str, ok := eventStrings[e]; ok {
		return str
	}
	return "Unknown"
}
