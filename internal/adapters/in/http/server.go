package http

import (
	"context"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases the HTTP edge exposes.
type Handlers struct {
	RegisterParty      commands.RegisterPartyCommandHandler
	CreateExpedition   commands.CreateExpeditionCommandHandler
	UpdateExpedition   commands.UpdateExpeditionCommandHandler
	DeleteExpedition   commands.DeleteExpeditionCommandHandler
	PublishExpedition  commands.PublishExpeditionCommandHandler
	CancelExpedition   commands.CancelExpeditionCommandHandler
	CompleteExpedition commands.CompleteExpeditionCommandHandler
	SubmitOffer        commands.SubmitOfferCommandHandler
	AcceptOffer        commands.AcceptOfferCommandHandler
	RejectOffer        commands.RejectOfferCommandHandler
	CreateCourse       commands.CreateCourseCommandHandler
	UpdateCourse       commands.UpdateCourseCommandHandler
	DeleteCourse       commands.DeleteCourseCommandHandler
	StartCourse        commands.StartCourseCommandHandler
	CompleteCourse     commands.CompleteCourseCommandHandler
	CancelCourse       commands.CancelCourseCommandHandler
	CreateBooking      commands.CreateBookingCommandHandler
	ConfirmBooking     commands.ConfirmBookingCommandHandler
	MarkPickedUp       commands.MarkPickedUpCommandHandler
	MarkDelivered      commands.MarkDeliveredCommandHandler
	CancelBooking      commands.CancelBookingCommandHandler
	SubmitReview       commands.SubmitReviewCommandHandler

	Search            queries.SearchQueryHandler
	SearchExpeditions queries.SearchExpeditionsQueryHandler
	SearchCourses     queries.SearchCoursesQueryHandler
	GetCourseLedger   queries.GetCourseLedgerQueryHandler
	GetPartyRating    queries.GetPartyRatingQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

// runOnID builds a command from the caller and the :id path parameter, runs it
// and answers 204.
func runOnID[C any](
	c echo.Context,
	build func(kernel.Actor, kernel.UUID) (C, error),
	handle func(context.Context, C) error,
) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	cmd, err := build(actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if err = handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func created(c echo.Context, id kernel.UUID) error {
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}

// RegisterParty handles POST /api/v1/parties.
func (s *Server) RegisterParty(c echo.Context) error {
	var body NewParty
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	role, err := kernel.ParseRole(body.Role)
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartyCommand(id, role, body.Name)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.RegisterParty.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

// GetPartyRating handles GET /api/v1/parties/:id/rating.
func (s *Server) GetPartyRating(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetPartyRatingQuery(id)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.GetPartyRating.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newRating(res))
}

// SubmitReview handles POST /api/v1/reviews.
func (s *Server) SubmitReview(c echo.Context) error {
	var body NewReview
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	reviewedID, err := kernel.UUIDFromBytes(body.ReviewedID[:])
	if err != nil {
		return writeError(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewSubmitReviewCommand(actorFrom(c), id, reviewedID, body.Rating, body.Comment)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.SubmitReview.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}
