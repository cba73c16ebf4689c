package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPricing(t *testing.T) services.PricingCalculator {
	t.Helper()
	p, err := services.NewPricingCalculator(services.Rates{
		PerKm:      dec("1.2"),
		PerKg:      dec("0.5"),
		PerM3:      dec("30"),
		Commission: dec("0.1"),
	})
	require.NoError(t, err)
	return p
}

func TestNewCreateExpeditionCommand_Validation(t *testing.T) {
	d := expeditionDetails(t, newFixture(t).now)
	d.Weight = dec("0")

	_, err := commands.NewCreateExpeditionCommand(sender(t), kernel.UUID{}, d, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.True(t, errs.IsValidation(err))
}

func TestCreateExpeditionCommandHandler_QuotesAndPublishes(t *testing.T) {
	f := newFixture(t)
	actor := sender(t)
	d := expeditionDetails(t, f.now.AddDate(0, 0, 1))
	distance := dec("465")
	d.DistanceKm = &distance
	cmd, err := commands.NewCreateExpeditionCommand(actor, kernel.NewUUID(), d, false)
	require.NoError(t, err)

	f.expectCommit()
	var saved *expedition.Expedition
	f.expeditions.On("Add", mock.Anything, mock.AnythingOfType("*expedition.Expedition")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*expedition.Expedition) }).
		Return(nil).Once()
	events := f.expectEvents(ports.ExpeditionPublished)

	h := commands.NewCreateExpeditionCommandHandler(f.deps, testPricing(t))
	require.NoError(t, h.Handle(t.Context(), cmd))

	require.NotNil(t, saved)
	assert.Equal(t, expedition.Published, saved.Status())
	assert.True(t, saved.SenderID().IsEqual(actor.PartyID()))
	require.NotNil(t, saved.EstimatedPrice())
	assert.Equal(t, "613.80", saved.EstimatedPrice().StringFixed(2))
	assert.Equal(t, []string{actor.PartyID().String()}, (*events)[0].Recipients)
}

func TestCreateExpeditionCommandHandler_DraftIsSilent(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewCreateExpeditionCommand(sender(t), kernel.NewUUID(), expeditionDetails(t, f.now), true)
	require.NoError(t, err)

	f.expectCommit()
	f.expeditions.On("Add", mock.Anything, mock.AnythingOfType("*expedition.Expedition")).Return(nil).Once()
	f.expectEvents()

	h := commands.NewCreateExpeditionCommandHandler(f.deps, testPricing(t))
	require.NoError(t, h.Handle(t.Context(), cmd))
}

func TestCreateExpeditionCommandHandler_RequiresSender(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewCreateExpeditionCommand(carrier(t), kernel.NewUUID(), expeditionDetails(t, f.now), false)
	require.NoError(t, err)

	h := commands.NewCreateExpeditionCommandHandler(f.deps, testPricing(t))
	err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestCreateExpeditionCommandHandler_NotConstructed(t *testing.T) {
	f := newFixture(t)
	h := commands.NewCreateExpeditionCommandHandler(f.deps, testPricing(t))

	err := h.Handle(t.Context(), commands.CreateExpeditionCommand{})

	assert.ErrorIs(t, err, commands.ErrCreateExpeditionCommandIsNotConstructed)
}

func TestUpdateExpeditionCommandHandler_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.Published)
	cmd, err := commands.NewUpdateExpeditionCommand(sender(t), exp.ID(), expeditionDetails(t, f.now))
	require.NoError(t, err)

	f.expectRollback()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()

	h := commands.NewUpdateExpeditionCommandHandler(f.deps, testPricing(t))
	err = h.Handle(t.Context(), cmd)

	var unauthorized *errs.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, "update expedition", unauthorized.Action)
}

func TestUpdateExpeditionCommandHandler_RefusesOnceOffersArrived(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.OffersReceived)
	cmd, err := commands.NewUpdateExpeditionCommand(owner, exp.ID(), expeditionDetails(t, f.now))
	require.NoError(t, err)

	f.expectRollback()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()

	h := commands.NewUpdateExpeditionCommandHandler(f.deps, testPricing(t))
	err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestPublishExpeditionCommandHandler(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.Draft)
	cmd, err := commands.NewPublishExpeditionCommand(owner, exp.ID())
	require.NoError(t, err)

	f.expectCommit()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.expeditions.On("Update", mock.Anything, exp).Return(nil).Once()
	f.expectEvents(ports.ExpeditionPublished)

	h := commands.NewPublishExpeditionCommandHandler(f.deps)
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, expedition.Published, exp.Status())
}

func TestCancelExpeditionCommandHandler_RejectsPendingOffers(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.OffersReceived)
	pending := f.newOffer(exp, kernel.NewUUID(), offer.Pending)
	expired := f.newOffer(exp, kernel.NewUUID(), offer.Expired)
	cmd, err := commands.NewCancelExpeditionCommand(owner, exp.ID())
	require.NoError(t, err)

	f.expectCommit()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{pending, expired}, nil).Once()
	f.expeditions.On("Update", mock.Anything, exp).Return(nil).Once()
	f.offers.On("Update", mock.Anything, pending).Return(nil).Once()
	events := f.expectEvents(ports.OfferRejected, ports.ExpeditionCancelled)

	h := commands.NewCancelExpeditionCommandHandler(f.deps)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, expedition.Cancelled, exp.Status())
	assert.False(t, exp.IsActive())
	assert.Equal(t, offer.Rejected, pending.Status())
	assert.Equal(t, offer.Expired, expired.Status())
	assert.ElementsMatch(t,
		[]string{owner.PartyID().String(), pending.CarrierID().String()},
		(*events)[1].Recipients)
}

func TestCancelExpeditionCommandHandler_BlockedOnceAssigned(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.Assigned)
	accepted := f.newOffer(exp, kernel.NewUUID(), offer.Accepted)
	cmd, err := commands.NewCancelExpeditionCommand(owner, exp.ID())
	require.NoError(t, err)

	f.expectRollback()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{accepted}, nil).Once()

	h := commands.NewCancelExpeditionCommandHandler(f.deps)
	err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrCancelBlocked)
	assert.Equal(t, expedition.Assigned, exp.Status())
}

func TestDeleteExpeditionCommandHandler(t *testing.T) {
	t.Run("should delete a published expedition", func(t *testing.T) {
		f := newFixture(t)
		owner := sender(t)
		exp := f.newExpedition(owner, expedition.Published)
		cmd, err := commands.NewDeleteExpeditionCommand(owner, exp.ID())
		require.NoError(t, err)

		f.expectCommit()
		f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
		f.expeditions.On("Delete", mock.Anything, exp.ID()).Return(nil).Once()

		h := commands.NewDeleteExpeditionCommandHandler(f.deps)
		require.NoError(t, h.Handle(t.Context(), cmd))
	})

	t.Run("should refuse an assigned expedition", func(t *testing.T) {
		f := newFixture(t)
		owner := sender(t)
		exp := f.newExpedition(owner, expedition.Assigned)
		cmd, err := commands.NewDeleteExpeditionCommand(owner, exp.ID())
		require.NoError(t, err)

		f.expectRollback()
		f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()

		h := commands.NewDeleteExpeditionCommandHandler(f.deps)
		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrIllegalTransition)
	})
}

func TestCompleteExpeditionCommandHandler(t *testing.T) {
	t.Run("assigned carrier may complete", func(t *testing.T) {
		f := newFixture(t)
		owner, assigned := sender(t), carrier(t)
		exp := f.newExpedition(owner, expedition.Assigned)
		accepted := f.newOffer(exp, assigned.PartyID(), offer.Accepted)
		cmd, err := commands.NewCompleteExpeditionCommand(assigned, exp.ID())
		require.NoError(t, err)

		f.expectCommit()
		f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
		f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{accepted}, nil).Once()
		f.expeditions.On("Update", mock.Anything, exp).Return(nil).Once()
		events := f.expectEvents(ports.ExpeditionCompleted)

		h := commands.NewCompleteExpeditionCommandHandler(f.deps)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, expedition.Completed, exp.Status())
		assert.Len(t, (*events)[0].Recipients, 2)
	})

	t.Run("other carriers may not", func(t *testing.T) {
		f := newFixture(t)
		owner := sender(t)
		exp := f.newExpedition(owner, expedition.Assigned)
		accepted := f.newOffer(exp, kernel.NewUUID(), offer.Accepted)
		cmd, err := commands.NewCompleteExpeditionCommand(carrier(t), exp.ID())
		require.NoError(t, err)

		f.expectRollback()
		f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
		f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{accepted}, nil).Once()

		h := commands.NewCompleteExpeditionCommandHandler(f.deps)
		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrUnauthorized)
	})

	t.Run("sender cannot complete before assignment", func(t *testing.T) {
		f := newFixture(t)
		owner := sender(t)
		exp := f.newExpedition(owner, expedition.Published)
		cmd, err := commands.NewCompleteExpeditionCommand(owner, exp.ID())
		require.NoError(t, err)

		f.expectRollback()
		f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
		f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{}, nil).Once()

		h := commands.NewCompleteExpeditionCommandHandler(f.deps)
		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrIllegalTransition)
	})
}
