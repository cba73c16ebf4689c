package commands

import (
	"errors"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateCourseCommandIsNotConstructed = errors.New(
	"CreateCourseCommand must be created via NewCreateCourseCommand constructor",
)

// CreateCourseCommand represents a carrier offering capacity on a route.
//
// Example:
//
//	cmd, err := NewCreateCourseCommand(actor, kernel.NewUUID(), course.Details{
//	    Origin:      origin,
//	    Destination: destination,
//	    Stops:       []string{"Dijon", "Lyon"},
//	    Departure:   departure,
//	    MaxWeight:   decimal.NewFromInt(1200),
//	    PricePerKg:  decimal.RequireFromString("0.45"),
//	    VehicleType: "van",
//	})
type CreateCourseCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	courseID kernel.UUID
	details  course.Details

	guard guard.ConstructorGuard
}

// NewCreateCourseCommand validates the identifier and the route details.
// Intermediate stops are trimmed.
func NewCreateCourseCommand(
	actor kernel.Actor,
	courseID kernel.UUID,
	details course.Details,
) (CreateCourseCommand, error) {
	details.Stops = append([]string(nil), details.Stops...)
	if err := errors.Join(courseID.Validate(), details.Validate()); err != nil {
		return CreateCourseCommand{}, err
	}

	return CreateCourseCommand{
		actor:    actor,
		courseID: courseID,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCourseCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourseCommandIsNotConstructed)
}

func (c CreateCourseCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateCourseCommand) CourseID() kernel.UUID {
	return c.courseID
}

func (c CreateCourseCommand) Details() course.Details {
	return c.details
}
