package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrSearchQueryIsNotConstructed = errors.New(
	"SearchQuery must be created via NewSearchQuery constructor",
)

// SearchQuery searches the side of the marketplace the caller trades with: carriers
// see expeditions, senders see courses, anonymous callers see both.
type SearchQuery struct {
	actor       kernel.Actor
	expeditions SearchExpeditionsQuery
	courses     SearchCoursesQuery
	guard       guard.ConstructorGuard
}

func NewSearchQuery(
	actor kernel.Actor,
	expeditionCriteria services.ExpeditionCriteria,
	courseCriteria services.CourseCriteria,
) (SearchQuery, error) {
	expeditions, expErr := NewSearchExpeditionsQuery(expeditionCriteria)
	courses, courseErr := NewSearchCoursesQuery(courseCriteria)
	if err := errors.Join(expErr, courseErr); err != nil {
		return SearchQuery{}, err
	}

	return SearchQuery{
		actor:       actor,
		expeditions: expeditions,
		courses:     courses,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q SearchQuery) Validate() error {
	return q.guard.Validate(ErrSearchQueryIsNotConstructed)
}

func (q SearchQuery) Actor() kernel.Actor {
	return q.actor
}

// SearchQueryResponse holds the sides searched; the other is nil.
type SearchQueryResponse struct {
	Expeditions *SearchExpeditionsQueryResponse
	Courses     *SearchCoursesQueryResponse
}
