package review_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/review"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	reviewer, reviewed := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should create review", func(t *testing.T) {
		r, err := review.NewReview(kernel.NewUUID(), reviewer, reviewed, 4, " on time ", time.Now())

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, 4, r.Rating())
		assert.Equal(t, "on time", r.Comment())
	})

	t.Run("should reject self review", func(t *testing.T) {
		r, err := review.NewReview(kernel.NewUUID(), reviewer, reviewer, 5, "", time.Now())

		assert.Nil(t, r)
		assert.ErrorIs(t, err, errs.ErrSelfReview)
	})

	for _, rating := range []int{0, 6, -1} {
		_, err := review.NewReview(kernel.NewUUID(), reviewer, reviewed, rating, "", time.Now())
		assert.ErrorIs(t, err, errs.ErrInvalidRating, "rating %d", rating)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}
