package expedition

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Urgency ranks expeditions in carrier search results; higher comes first.
type Urgency int

const (
	Low Urgency = iota + 1
	Normal
	Urgent
)

// String returns the urgency name used on the wire.
func (u Urgency) String() string {
	switch u {
	case Low:
		return "low"
	case Normal:
		return "normal"
	case Urgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// Validate rejects values outside Low..Urgent.
func (u Urgency) Validate() error {
	if u < Low || u > Urgent {
		return errs.NewValueIsOutOfRangeError("urgency", int(u), int(Low), int(Urgent))
	}
	return nil
}

// ParseUrgency maps the wire names; an empty string means Normal.
func ParseUrgency(s string) (Urgency, error) {
	switch s {
	case "low":
		return Low, nil
	case "", "normal":
		return Normal, nil
	case "urgent":
		return Urgent, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%q is not a known urgency", s))
	}
}
