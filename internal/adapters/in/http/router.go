package http

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const swaggerInstance = "freight"

// RouterConfig carries what the router needs besides the use cases.
type RouterConfig struct {
	Spec          *openapi3.T
	Authenticator *Authenticator
	// Idempotency is optional; without it POSTs are not deduplicated.
	Idempotency IdempotencyStore
	Recorder    RequestRecorder
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

// NewRouter registers every route on a new echo instance.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.Recorder != nil {
		e.Use(Metrics(cfg.Recorder))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}
	if err := registerSwagger(e, cfg.Spec); err != nil {
		return nil, err
	}

	validator, err := RequestValidator(cfg.Spec)
	if err != nil {
		return nil, err
	}
	api := e.Group("/api/v1", cfg.Authenticator.Middleware(), validator)
	if cfg.Idempotency != nil {
		api.Use(Idempotency(cfg.Idempotency))
	}

	api.POST("/parties", s.RegisterParty)
	api.GET("/parties/:id/rating", s.GetPartyRating)

	api.POST("/expeditions", s.CreateExpedition)
	api.PUT("/expeditions/:id", s.UpdateExpedition)
	api.DELETE("/expeditions/:id", s.DeleteExpedition)
	api.POST("/expeditions/:id/publish", s.PublishExpedition)
	api.POST("/expeditions/:id/cancel", s.CancelExpedition)
	api.POST("/expeditions/:id/complete", s.CompleteExpedition)
	api.POST("/expeditions/:id/offers", s.SubmitOffer)
	api.POST("/offers/:id/accept", s.AcceptOffer)
	api.POST("/offers/:id/reject", s.RejectOffer)

	api.POST("/courses", s.CreateCourse)
	api.PUT("/courses/:id", s.UpdateCourse)
	api.DELETE("/courses/:id", s.DeleteCourse)
	api.POST("/courses/:id/start", s.StartCourse)
	api.POST("/courses/:id/complete", s.CompleteCourse)
	api.POST("/courses/:id/cancel", s.CancelCourse)
	api.GET("/courses/:id/ledger", s.GetCourseLedger)
	api.POST("/courses/:id/bookings", s.CreateBooking)

	api.POST("/bookings/:id/confirm", s.ConfirmBooking)
	api.POST("/bookings/:id/pickup", s.MarkPickedUp)
	api.POST("/bookings/:id/deliver", s.MarkDelivered)
	api.POST("/bookings/:id/cancel", s.CancelBooking)

	api.POST("/reviews", s.SubmitReview)

	api.GET("/search", s.Search)
	api.GET("/search/expeditions", s.SearchExpeditions)
	api.GET("/search/courses", s.SearchCourses)

	return e, nil
}

// registerSwagger serves the OpenAPI document through swagger UI on /swagger/*.
func registerSwagger(e *echo.Echo, spec *openapi3.T) error {
	doc, err := spec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	if swag.GetSwagger(swaggerInstance) == nil {
		swag.Register(swaggerInstance, &swag.Spec{
			InfoInstanceName: swaggerInstance,
			Title:            spec.Info.Title,
			Version:          spec.Info.Version,
			SwaggerTemplate:  string(doc),
			LeftDelim:        "[[",
			RightDelim:       "]]",
		})
	}
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))
	return nil
}

// DefaultMetricsHandler serves the default Prometheus registry.
func DefaultMetricsHandler() http.Handler {
	return promhttp.Handler()
}
