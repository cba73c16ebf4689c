package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlace(t *testing.T) {
	t.Run("trims_and_keeps_parts", func(t *testing.T) {
		p, err := kernel.NewPlace(" 12 rue de la Paix ", " Paris ")

		require.NoError(t, err)
		assert.Equal(t, "12 rue de la Paix", p.Address())
		assert.Equal(t, "Paris", p.City())
		require.NoError(t, p.Validate())
	})

	t.Run("city_is_required", func(t *testing.T) {
		_, err := kernel.NewPlace("12 rue de la Paix", "  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_place_is_invalid", func(t *testing.T) {
		require.ErrorIs(t, kernel.Place{}.Validate(), errs.ErrValueIsRequired)
	})
}

func TestPlace_Matches(t *testing.T) {
	p, err := kernel.NewPlace("Quai de Saône", "Lyon")
	require.NoError(t, err)

	testCases := []struct {
		term string
		want bool
	}{
		{"", true},
		{"lyon", true},
		{"LY", true},
		{"saône", true},
		{"Marseille", false},
	}

	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Matches(tc.term))
		})
	}
}
