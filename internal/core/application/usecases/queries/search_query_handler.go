package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

type SearchQueryHandler struct {
	expeditions SearchExpeditionsQueryHandler
	courses     SearchCoursesQueryHandler
}

func NewSearchQueryHandler(
	expeditions SearchExpeditionsQueryHandler,
	courses SearchCoursesQueryHandler,
) SearchQueryHandler {
	return SearchQueryHandler{expeditions: expeditions, courses: courses}
}

func (h SearchQueryHandler) Handle(ctx context.Context, query SearchQuery) (SearchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchQueryResponse{}, err
	}

	role := query.Actor().Role()
	var resp SearchQueryResponse

	if role == kernel.Carrier || role == kernel.Anonymous {
		res, err := h.expeditions.Handle(ctx, query.expeditions)
		if err != nil {
			return SearchQueryResponse{}, err
		}
		resp.Expeditions = &res
	}
	if role == kernel.Sender || role == kernel.Anonymous {
		res, err := h.courses.Handle(ctx, query.courses)
		if err != nil {
			return SearchQueryResponse{}, err
		}
		resp.Courses = &res
	}
	return resp, nil
}
