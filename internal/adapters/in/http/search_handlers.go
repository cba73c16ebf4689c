package http

import (
	"net/http"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// searchParams are the query parameters shared by every search route.
type searchParams struct {
	Origin      *string
	Destination *string
	Day         *openapi_types.Date
	Budget      *string
	Offset      *int
	Limit       *int
}

func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func bindSearchParams(c echo.Context) (searchParams, error) {
	var p searchParams
	for name, dest := range map[string]any{
		"origin":      &p.Origin,
		"destination": &p.Destination,
		"day":         &p.Day,
		"budget":      &p.Budget,
		"offset":      &p.Offset,
		"limit":       &p.Limit,
	} {
		if err := bindQuery(c, name, dest); err != nil {
			return searchParams{}, err
		}
	}
	return p, nil
}

func (p searchParams) page() services.Page {
	return services.Page{Offset: deref(p.Offset), Limit: deref(p.Limit)}
}

func (p searchParams) day() *time.Time {
	if p.Day == nil {
		return nil
	}
	return &p.Day.Time
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// decimalQuery reads an optional decimal query parameter.
func decimalQuery(c echo.Context, name string) (*decimal.Decimal, error) {
	var raw *string
	if err := bindQuery(c, name, &raw); err != nil || raw == nil {
		return nil, err
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &d, nil
}

func (p searchParams) expeditionCriteria(c echo.Context) (services.ExpeditionCriteria, error) {
	budget, err := decimalQuery(c, "budget")
	if err != nil {
		return services.ExpeditionCriteria{}, err
	}
	maxWeight, err := decimalQuery(c, "maxWeight")
	if err != nil {
		return services.ExpeditionCriteria{}, err
	}
	maxVolume, err := decimalQuery(c, "maxVolume")
	if err != nil {
		return services.ExpeditionCriteria{}, err
	}
	return services.ExpeditionCriteria{
		Origin:      deref(p.Origin),
		Destination: deref(p.Destination),
		Day:         p.day(),
		MaxWeight:   maxWeight,
		MaxVolume:   maxVolume,
		Budget:      budget,
		Page:        p.page(),
	}, nil
}

func (p searchParams) courseCriteria(c echo.Context) (services.CourseCriteria, error) {
	budget, err := decimalQuery(c, "budget")
	if err != nil {
		return services.CourseCriteria{}, err
	}
	weight, err := decimalQuery(c, "weight")
	if err != nil {
		return services.CourseCriteria{}, err
	}
	volume, err := decimalQuery(c, "volume")
	if err != nil {
		return services.CourseCriteria{}, err
	}
	return services.CourseCriteria{
		Origin:      deref(p.Origin),
		Destination: deref(p.Destination),
		Day:         p.day(),
		Weight:      weight,
		Volume:      volume,
		Budget:      budget,
		Page:        p.page(),
	}, nil
}

// SearchExpeditions handles GET /api/v1/search/expeditions.
func (s *Server) SearchExpeditions(c echo.Context) error {
	params, err := bindSearchParams(c)
	if err != nil {
		return writeError(c, err)
	}
	criteria, err := params.expeditionCriteria(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewSearchExpeditionsQuery(criteria)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.SearchExpeditions.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newExpeditionPage(res))
}

// SearchCourses handles GET /api/v1/search/courses.
func (s *Server) SearchCourses(c echo.Context) error {
	params, err := bindSearchParams(c)
	if err != nil {
		return writeError(c, err)
	}
	criteria, err := params.courseCriteria(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewSearchCoursesQuery(criteria)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.SearchCourses.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newCoursePage(res))
}

// Search handles GET /api/v1/search: the caller's role picks the side searched.
func (s *Server) Search(c echo.Context) error {
	params, err := bindSearchParams(c)
	if err != nil {
		return writeError(c, err)
	}
	expeditionCriteria, err := params.expeditionCriteria(c)
	if err != nil {
		return writeError(c, err)
	}
	courseCriteria, err := params.courseCriteria(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewSearchQuery(actorFrom(c), expeditionCriteria, courseCriteria)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.Search.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	var out SearchResult
	if res.Expeditions != nil {
		page := newExpeditionPage(*res.Expeditions)
		out.Expeditions = &page
	}
	if res.Courses != nil {
		page := newCoursePage(*res.Courses)
		out.Courses = &page
	}
	return c.JSON(http.StatusOK, out)
}

// GetCourseLedger handles GET /api/v1/courses/:id/ledger.
func (s *Server) GetCourseLedger(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	query, err := queries.NewGetCourseLedgerQuery(actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.h.GetCourseLedger.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newLedger(res))
}
