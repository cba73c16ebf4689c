package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchExpeditionsQuery_Normalizes(t *testing.T) {
	query, err := queries.NewSearchExpeditionsQuery(services.ExpeditionCriteria{
		Origin:      "  Paris ",
		Destination: "lyon\t",
		Page:        services.Page{Offset: 5, Limit: 500},
	})
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	c := query.Criteria()
	assert.Equal(t, "Paris", c.Origin)
	assert.Equal(t, "lyon", c.Destination)
	assert.Equal(t, services.Page{Offset: 5, Limit: services.MaxPageSize}, c.Page)
}

func TestNewSearchExpeditionsQuery_DefaultPage(t *testing.T) {
	query, err := queries.NewSearchExpeditionsQuery(services.ExpeditionCriteria{})
	require.NoError(t, err)

	assert.Equal(t, services.DefaultPageSize, query.Criteria().Page.Limit)
}

func TestNewSearchQueries_RejectNegativeBounds(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	_, err := queries.NewSearchExpeditionsQuery(services.ExpeditionCriteria{MaxWeight: &negative})
	assert.True(t, errs.IsValidation(err))

	_, err = queries.NewSearchCoursesQuery(services.CourseCriteria{Budget: &negative})
	assert.True(t, errs.IsValidation(err))

	_, err = queries.NewSearchCoursesQuery(services.CourseCriteria{Page: services.Page{Offset: -1}})
	assert.True(t, errs.IsValidation(err))

	_, err = queries.NewSearchQuery(kernel.AnonymousActor(),
		services.ExpeditionCriteria{}, services.CourseCriteria{Volume: &negative})
	assert.True(t, errs.IsValidation(err))
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.SearchExpeditionsQuery{}.Validate(), queries.ErrSearchExpeditionsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.SearchCoursesQuery{}.Validate(), queries.ErrSearchCoursesQueryIsNotConstructed)
	assert.ErrorIs(t, queries.SearchQuery{}.Validate(), queries.ErrSearchQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetCourseLedgerQuery{}.Validate(), queries.ErrGetCourseLedgerQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetPartyRatingQuery{}.Validate(), queries.ErrGetPartyRatingQueryIsNotConstructed)
}

func TestNewIDQueries_RejectNilID(t *testing.T) {
	_, err := queries.NewGetCourseLedgerQuery(kernel.AnonymousActor(), kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = queries.NewGetPartyRatingQuery(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
