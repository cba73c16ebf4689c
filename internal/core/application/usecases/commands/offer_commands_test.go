package commands_test

import (
	"errors"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitOfferCommandHandler(t *testing.T) {
	f := newFixture(t)
	exp := f.newExpedition(sender(t), expedition.Published)
	actor := carrier(t)
	cmd, err := commands.NewSubmitOfferCommand(actor, kernel.NewUUID(), exp.ID(), dec("180.5"), " tail lift ")
	require.NoError(t, err)

	f.expectCommit()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	var saved *offer.Offer
	f.offers.On("Add", mock.Anything, mock.AnythingOfType("*offer.Offer")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*offer.Offer) }).
		Return(nil).Once()
	f.expeditions.On("Update", mock.Anything, exp).Return(nil).Once()
	events := f.expectEvents(ports.OfferSubmitted)

	h := commands.NewSubmitOfferCommandHandler(f.deps, 48*time.Hour)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, expedition.OffersReceived, exp.Status())
	require.NotNil(t, saved)
	assert.Equal(t, "tail lift", saved.Message())
	assert.Equal(t, f.now.Add(48*time.Hour), saved.ExpiresAt())
	assert.Equal(t, "180.50", (*events)[0].Payload["price"])
}

func TestSubmitOfferCommandHandler_ClosedExpedition(t *testing.T) {
	f := newFixture(t)
	exp := f.newExpedition(sender(t), expedition.Assigned)
	cmd, err := commands.NewSubmitOfferCommand(carrier(t), kernel.NewUUID(), exp.ID(), dec("100"), "")
	require.NoError(t, err)

	f.expectRollback()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()

	h := commands.NewSubmitOfferCommandHandler(f.deps, 0)
	assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrIllegalTransition)
}

func TestSubmitOfferCommandHandler_RequiresCarrier(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewSubmitOfferCommand(sender(t), kernel.NewUUID(), kernel.NewUUID(), dec("100"), "")
	require.NoError(t, err)

	h := commands.NewSubmitOfferCommandHandler(f.deps, 0)
	assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrUnauthorized)
}

func TestNewSubmitOfferCommand_RejectsNonPositivePrice(t *testing.T) {
	_, err := commands.NewSubmitOfferCommand(carrier(t), kernel.NewUUID(), kernel.NewUUID(), dec("0"), "")

	assert.True(t, errs.IsValidation(err))
}

func TestAcceptOfferCommandHandler_Cascade(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.OffersReceived)
	chosen := f.newOffer(exp, kernel.NewUUID(), offer.Pending)
	other1 := f.newOffer(exp, kernel.NewUUID(), offer.Pending)
	other2 := f.newOffer(exp, kernel.NewUUID(), offer.Pending)
	all := []*offer.Offer{chosen, other1, other2}
	cmd, err := commands.NewAcceptOfferCommand(owner, chosen.ID())
	require.NoError(t, err)

	f.expectCommit()
	f.offers.On("Get", mock.Anything, chosen.ID()).Return(chosen, nil).Once()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return(all, nil).Once()
	f.offers.On("Update", mock.Anything, mock.AnythingOfType("*offer.Offer")).Return(nil).Times(3)
	f.expeditions.On("Update", mock.Anything, exp).Return(nil).Once()
	f.expectEvents(ports.OfferAccepted, ports.OfferRejected, ports.OfferRejected)

	h := commands.NewAcceptOfferCommandHandler(f.deps)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, offer.Accepted, chosen.Status())
	assert.Equal(t, offer.Rejected, other1.Status())
	assert.Equal(t, offer.Rejected, other2.Status())
	assert.Equal(t, expedition.Assigned, exp.Status())
}

func TestAcceptOfferCommandHandler_SecondAcceptanceFails(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.Assigned)
	accepted := f.newOffer(exp, kernel.NewUUID(), offer.Accepted)
	late := f.newOffer(exp, kernel.NewUUID(), offer.Rejected)
	cmd, err := commands.NewAcceptOfferCommand(owner, late.ID())
	require.NoError(t, err)

	f.expectRollback()
	f.offers.On("Get", mock.Anything, late.ID()).Return(late, nil).Once()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{accepted, late}, nil).Once()

	h := commands.NewAcceptOfferCommandHandler(f.deps)
	err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, offer.Accepted, accepted.Status())
	assert.Equal(t, offer.Rejected, late.Status())
}

func TestAcceptOfferCommandHandler_ExpiredOffer(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.OffersReceived)
	o, err := offer.RestoreOffer(kernel.NewUUID(), exp.ID(), kernel.NewUUID(), dec("90"), "",
		offer.Pending, f.now.Add(-2*time.Hour), f.now.Add(-time.Hour))
	require.NoError(t, err)
	cmd, err := commands.NewAcceptOfferCommand(owner, o.ID())
	require.NoError(t, err)

	f.expectRollback()
	f.offers.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{o}, nil).Once()

	h := commands.NewAcceptOfferCommandHandler(f.deps)
	assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrIllegalTransition)
	assert.Equal(t, offer.Pending, o.Status())
}

func TestRejectOfferCommandHandler(t *testing.T) {
	f := newFixture(t)
	owner := sender(t)
	exp := f.newExpedition(owner, expedition.OffersReceived)
	o := f.newOffer(exp, kernel.NewUUID(), offer.Pending)
	cmd, err := commands.NewRejectOfferCommand(owner, o.ID())
	require.NoError(t, err)

	f.expectCommit()
	f.offers.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).Return([]*offer.Offer{o}, nil).Once()
	f.offers.On("Update", mock.Anything, o).Return(nil).Once()
	f.expectEvents(ports.OfferRejected)

	h := commands.NewRejectOfferCommandHandler(f.deps)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, offer.Rejected, o.Status())
	assert.Equal(t, expedition.OffersReceived, exp.Status())
}

func TestExpireOffersCommandHandler(t *testing.T) {
	f := newFixture(t)
	exp := f.newExpedition(sender(t), expedition.OffersReceived)
	overdue, err := offer.RestoreOffer(kernel.NewUUID(), exp.ID(), kernel.NewUUID(), dec("90"), "",
		offer.Pending, f.now.Add(-48*time.Hour), f.now.Add(-time.Minute))
	require.NoError(t, err)
	// accepted after it was listed: the re-read under lock sees its new status
	raced, err := offer.RestoreOffer(kernel.NewUUID(), exp.ID(), kernel.NewUUID(), dec("95"), "",
		offer.Pending, f.now.Add(-48*time.Hour), f.now.Add(-time.Minute))
	require.NoError(t, err)
	racedNow, err := offer.RestoreOffer(raced.ID(), exp.ID(), raced.CarrierID(), dec("95"), "",
		offer.Rejected, raced.CreatedAt(), raced.ExpiresAt())
	require.NoError(t, err)
	fresh := f.newOffer(exp, kernel.NewUUID(), offer.Pending)

	f.expectCommit()
	f.expectCommit()
	f.offers.On("ListExpiredPending", mock.Anything, f.now, commands.DefaultExpiryBatch).
		Return([]*offer.Offer{overdue, raced}, nil).Once()
	f.expeditions.On("GetForUpdate", mock.Anything, exp.ID()).Return(exp, nil).Once()
	f.offers.On("ListByExpedition", mock.Anything, exp.ID()).
		Return([]*offer.Offer{overdue, racedNow, fresh}, nil).Once()
	f.offers.On("Update", mock.Anything, overdue).Return(nil).Once()
	f.expectEvents(ports.OfferExpired)

	cmd, err := commands.NewExpireOffersCommand(0)
	require.NoError(t, err)
	h := commands.NewExpireOffersCommandHandler(f.deps)
	n, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, offer.Expired, overdue.Status())
	assert.Equal(t, offer.Pending, fresh.Status())
}

func TestExpireOffersCommandHandler_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.expectRollback()
	f.offers.On("ListExpiredPending", mock.Anything, f.now, 5).Return(nil, errors.New("boom")).Once()

	cmd, err := commands.NewExpireOffersCommand(5)
	require.NoError(t, err)
	h := commands.NewExpireOffersCommandHandler(f.deps)
	n, err := h.Handle(t.Context(), cmd)

	require.EqualError(t, err, "boom")
	assert.Zero(t, n)
}
