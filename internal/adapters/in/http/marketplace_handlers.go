package http

import (
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateExpedition handles POST /api/v1/expeditions.
func (s *Server) CreateExpedition(c echo.Context) error {
	var body NewExpedition
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	details, err := body.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateExpeditionCommand(actorFrom(c), id, details, body.Draft)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.CreateExpedition.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

// UpdateExpedition handles PUT /api/v1/expeditions/:id.
func (s *Server) UpdateExpedition(c echo.Context) error {
	var body ExpeditionDetails
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	details, err := body.toDomain()
	if err != nil {
		return writeError(c, err)
	}
	return runOnID(c, func(actor kernel.Actor, id kernel.UUID) (commands.UpdateExpeditionCommand, error) {
		return commands.NewUpdateExpeditionCommand(actor, id, details)
	}, s.h.UpdateExpedition.Handle)
}

func (s *Server) DeleteExpedition(c echo.Context) error {
	return runOnID(c, commands.NewDeleteExpeditionCommand, s.h.DeleteExpedition.Handle)
}

func (s *Server) PublishExpedition(c echo.Context) error {
	return runOnID(c, commands.NewPublishExpeditionCommand, s.h.PublishExpedition.Handle)
}

func (s *Server) CancelExpedition(c echo.Context) error {
	return runOnID(c, commands.NewCancelExpeditionCommand, s.h.CancelExpedition.Handle)
}

func (s *Server) CompleteExpedition(c echo.Context) error {
	return runOnID(c, commands.NewCompleteExpeditionCommand, s.h.CompleteExpedition.Handle)
}

// SubmitOffer handles POST /api/v1/expeditions/:id/offers.
func (s *Server) SubmitOffer(c echo.Context) error {
	var body NewOffer
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	expeditionID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(actorFrom(c), id, expeditionID, body.Price, body.Message)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.SubmitOffer.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

func (s *Server) AcceptOffer(c echo.Context) error {
	return runOnID(c, commands.NewAcceptOfferCommand, s.h.AcceptOffer.Handle)
}

func (s *Server) RejectOffer(c echo.Context) error {
	return runOnID(c, commands.NewRejectOfferCommand, s.h.RejectOffer.Handle)
}

// CreateCourse handles POST /api/v1/courses.
func (s *Server) CreateCourse(c echo.Context) error {
	var body CourseDetails
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	details, err := body.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCourseCommand(actorFrom(c), id, details)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.CreateCourse.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

// UpdateCourse handles PUT /api/v1/courses/:id.
func (s *Server) UpdateCourse(c echo.Context) error {
	var body CourseDetails
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	details, err := body.toDomain()
	if err != nil {
		return writeError(c, err)
	}
	return runOnID(c, func(actor kernel.Actor, id kernel.UUID) (commands.UpdateCourseCommand, error) {
		return commands.NewUpdateCourseCommand(actor, id, details)
	}, s.h.UpdateCourse.Handle)
}

func (s *Server) DeleteCourse(c echo.Context) error {
	return runOnID(c, commands.NewDeleteCourseCommand, s.h.DeleteCourse.Handle)
}

func (s *Server) StartCourse(c echo.Context) error {
	return runOnID(c, commands.NewStartCourseCommand, s.h.StartCourse.Handle)
}

func (s *Server) CompleteCourse(c echo.Context) error {
	return runOnID(c, commands.NewCompleteCourseCommand, s.h.CompleteCourse.Handle)
}

func (s *Server) CancelCourse(c echo.Context) error {
	return runOnID(c, commands.NewCancelCourseCommand, s.h.CancelCourse.Handle)
}

// CreateBooking handles POST /api/v1/courses/:id/bookings.
func (s *Server) CreateBooking(c echo.Context) error {
	var body NewBooking
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	courseID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateBookingCommand(actorFrom(c), id, courseID, body.Weight, body.Volume, body.Packages)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.CreateBooking.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

func (s *Server) ConfirmBooking(c echo.Context) error {
	return runOnID(c, commands.NewConfirmBookingCommand, s.h.ConfirmBooking.Handle)
}

func (s *Server) MarkPickedUp(c echo.Context) error {
	return runOnID(c, commands.NewMarkPickedUpCommand, s.h.MarkPickedUp.Handle)
}

func (s *Server) MarkDelivered(c echo.Context) error {
	return runOnID(c, commands.NewMarkDeliveredCommand, s.h.MarkDelivered.Handle)
}

func (s *Server) CancelBooking(c echo.Context) error {
	return runOnID(c, commands.NewCancelBookingCommand, s.h.CancelBooking.Handle)
}
