package course

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a course.
//
// State transitions:
//
//	Available  --Fill-->     Full
//	Full       --Reopen-->   Available
//	Available  --Start-->    InProgress
//	Full       --Start-->    InProgress
//	InProgress --Complete--> Completed
//	Available, Full --Cancel--> Cancelled
type Status int

const (
	Unknown Status = iota
	Available
	Full
	InProgress
	Completed
	Cancelled
)

// Event drives a course from one Status to the next.
type Event int

const (
	Fill Event = iota + 1
	Reopen
	Start
	Complete
	Cancel
)

var statusStrings = map[Status]string{
	Available:  "Available",
	Full:       "Full",
	InProgress: "InProgress",
	Completed:  "Completed",
	Cancelled:  "Cancelled",
}

var eventStrings = map[Event]string{
	Fill:     "Fill",
	Reopen:   "Reopen",
	Start:    "Start",
	Complete: "Complete",
	Cancel:   "Cancel",
}

var transitions = kernel.NewTransitionTable("course", map[kernel.Edge[Status, Event]]Status{
	{From: Available, Event: Fill}:      Full,
	{From: Full, Event: Reopen}:         Available,
	{From: Available, Event: Start}:     InProgress,
	{From: Full, Event: Start}:          InProgress,
	{From: InProgress, Event: Complete}: Completed,
	{From: Available, Event: Cancel}:    Cancelled,
	{From: Full, Event: Cancel}:         Cancelled,
})

// Transitions exposes the course edge table.
func Transitions() kernel.TransitionTable[Status, Event] {
	return transitions
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range values.
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

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AcceptsBookings reports whether new reservations may be attempted.
// A Full course still answers with a capacity error rather than an illegal transition.
func (s Status) AcceptsBookings() bool {
	return s == Available || s == Full
}

func (e Event) String() string {
	if str, ok := eventStrings[e]; ok {
		return str
	}
	return "Unknown"
}
