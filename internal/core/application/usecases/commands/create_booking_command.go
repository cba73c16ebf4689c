package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateBookingCommandIsNotConstructed = errors.New(
	"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
)

// CreateBookingCommand represents a sender reserving capacity on a course.
//
// Example:
//
//	cmd, err := NewCreateBookingCommand(actor, kernel.NewUUID(), courseID,
//	    decimal.NewFromInt(40), nil, 2)
//	if err != nil {
//	    return err
//	}
//	if err = handler.Handle(ctx, cmd); errors.Is(err, errs.ErrCapacityExceeded) {
//	    // the course has less than 40 kg left
//	}
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	bookingID kernel.UUID
	courseID  kernel.UUID
	weight    decimal.Decimal
	volume    *decimal.Decimal
	packages  int

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand validates identifiers and quantities. Volume is optional.
func NewCreateBookingCommand(
	actor kernel.Actor,
	bookingID, courseID kernel.UUID,
	weight decimal.Decimal,
	volume *decimal.Decimal,
	packages int,
) (CreateBookingCommand, error) {
	var volumeErr, packagesErr error
	if volume != nil {
		volumeErr = kernel.RequirePositive("volume", *volume)
	}
	if packages < 1 {
		packagesErr = errs.NewValueIsOutOfRangeError("packages", packages, 1, "unbounded")
	}
	if err := errors.Join(
		bookingID.Validate(),
		courseID.Validate(),
		kernel.RequirePositive("weight", weight),
		volumeErr,
		packagesErr,
	); err != nil {
		return CreateBookingCommand{}, err
	}

	return CreateBookingCommand{
		actor:     actor,
		bookingID: bookingID,
		courseID:  courseID,
		weight:    weight,
		volume:    volume,
		packages:  packages,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

func (c CreateBookingCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateBookingCommand) BookingID() kernel.UUID {
	return c.bookingID
}

func (c CreateBookingCommand) CourseID() kernel.UUID {
	return c.courseID
}

func (c CreateBookingCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c CreateBookingCommand) Volume() *decimal.Decimal {
	return c.volume
}

func (c CreateBookingCommand) Packages() int {
	return c.packages
}
