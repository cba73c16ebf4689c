package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]kernel.Role{
		"sender":    kernel.Sender,
		"carrier":   kernel.Carrier,
		"":          kernel.Anonymous,
		"anonymous": kernel.Anonymous,
	} {
		got, err := kernel.ParseRole(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := kernel.ParseRole("admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewActor(t *testing.T) {
	t.Run("requires_party_id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.Sender)
		require.Error(t, err)
	})

	t.Run("anonymous_cannot_be_constructed_with_id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.Anonymous)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestActor_Authorization(t *testing.T) {
	owner := kernel.NewUUID()
	actor, err := kernel.NewActor(owner, kernel.Carrier)
	require.NoError(t, err)

	require.NoError(t, actor.Require("create course", kernel.Carrier))
	require.ErrorIs(t, actor.Require("create booking", kernel.Sender), errs.ErrUnauthorized)

	require.NoError(t, actor.RequireOwner("cancel course", owner))
	require.ErrorIs(t, actor.RequireOwner("cancel course", kernel.NewUUID()), errs.ErrUnauthorized)

	anonymous := kernel.AnonymousActor()
	assert.True(t, anonymous.IsAnonymous())
	assert.False(t, anonymous.Is(kernel.UUID{}))
	require.ErrorIs(t, anonymous.RequireOwner("cancel course", owner), errs.ErrUnauthorized)
}
