package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

type UpdateCourseCommandHandler struct {
	deps   Deps
	ledger services.CapacityLedger
}

func NewUpdateCourseCommandHandler(deps Deps) UpdateCourseCommandHandler {
	return UpdateCourseCommandHandler{deps: deps, ledger: services.NewCapacityLedger()}
}

// Handle checks the new capacity against the committed weight and volume read under
// the course lock. A course left with no weight or no declared volume to sell becomes Full.
func (h *UpdateCourseCommandHandler) Handle(ctx context.Context, cmd UpdateCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.Tx.Run(ctx, "update_course", func(ctx context.Context, uow UoW) error {
		c, err := lockOwnedCourse(ctx, uow, cmd.Actor(), "update course", cmd.TargetID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}

		if err = c.Update(cmd.Details(), h.ledger.CommittedWeight(bookings), h.ledger.CommittedVolume(bookings)); err != nil {
			return err
		}
		if h.ledger.Exhausted(c, bookings) {
			if err = c.Fill(); err != nil {
				return err
			}
		}
		return uow.CourseRepository().Update(ctx, c)
	})
}
