package commands_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/party"
	"freight/internal/core/domain/model/review"
	"freight/internal/core/ports"
	"freight/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type MockPartyRepository struct{ mock.Mock }

func (m *MockPartyRepository) Add(ctx context.Context, p *party.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) Update(ctx context.Context, p *party.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) Get(ctx context.Context, id kernel.UUID) (*party.Party, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*party.Party)
	return p, args.Error(1)
}

func (m *MockPartyRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*party.Party, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*party.Party)
	return p, args.Error(1)
}

type MockExpeditionRepository struct{ mock.Mock }

func (m *MockExpeditionRepository) Add(ctx context.Context, e *expedition.Expedition) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExpeditionRepository) Update(ctx context.Context, e *expedition.Expedition) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExpeditionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpeditionRepository) Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*expedition.Expedition)
	return e, args.Error(1)
}

func (m *MockExpeditionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*expedition.Expedition)
	return e, args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferRepository) ListByExpedition(ctx context.Context, id kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).([]*offer.Offer)
	return o, args.Error(1)
}

func (m *MockOfferRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error) {
	args := m.Called(ctx, now, limit)
	o, _ := args.Get(0).([]*offer.Offer)
	return o, args.Error(1)
}

type MockCourseRepository struct{ mock.Mock }

func (m *MockCourseRepository) Add(ctx context.Context, c *course.Course) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourseRepository) Update(ctx context.Context, c *course.Course) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCourseRepository) Get(ctx context.Context, id kernel.UUID) (*course.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*course.Course)
	return c, args.Error(1)
}

func (m *MockCourseRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*course.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*course.Course)
	return c, args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepository) ListByCourse(ctx context.Context, id kernel.UUID) ([]*booking.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]*booking.Booking)
	return b, args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) Exists(ctx context.Context, reviewerID, reviewedID kernel.UUID) (bool, error) {
	args := m.Called(ctx, reviewerID, reviewedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByReviewed(ctx context.Context, id kernel.UUID) ([]*review.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).([]*review.Review)
	return r, args.Error(1)
}

type MockUoW struct {
	mock.Mock

	parties     *MockPartyRepository
	expeditions *MockExpeditionRepository
	offers      *MockOfferRepository
	courses     *MockCourseRepository
	bookings    *MockBookingRepository
	reviews     *MockReviewRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) PartyRepository() ports.PartyRepository { return m.parties }
func (m *MockUoW) ExpeditionRepository() ports.ExpeditionRepository { return m.expeditions }
func (m *MockUoW) OfferRepository() ports.OfferRepository { return m.offers }
func (m *MockUoW) CourseRepository() ports.CourseRepository { return m.courses }
func (m *MockUoW) BookingRepository() ports.BookingRepository { return m.bookings }
func (m *MockUoW) ReviewRepository() ports.ReviewRepository { return m.reviews }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

// fixture wires handlers to mocked repositories, a gomock notifier and a fixed clock.
type fixture struct {
	t           *testing.T
	now         time.Time
	uow         *MockUoW
	factory     *MockUoWFactory
	parties     *MockPartyRepository
	expeditions *MockExpeditionRepository
	offers      *MockOfferRepository
	courses     *MockCourseRepository
	bookings    *MockBookingRepository
	reviews     *MockReviewRepository
	notifier    *mocks.MockNotifier
	deps        commands.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:           t,
		now:         time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		parties:     new(MockPartyRepository),
		expeditions: new(MockExpeditionRepository),
		offers:      new(MockOfferRepository),
		courses:     new(MockCourseRepository),
		bookings:    new(MockBookingRepository),
		reviews:     new(MockReviewRepository),
		factory:     new(MockUoWFactory),
	}
	f.uow = &MockUoW{
		parties:     f.parties,
		expeditions: f.expeditions,
		offers:      f.offers,
		courses:     f.courses,
		bookings:    f.bookings,
		reviews:     f.reviews,
	}
	f.factory.On("Create").Return(f.uow)
	f.notifier = mocks.NewMockNotifier(gomock.NewController(t))

	tx := commands.NewTransactor(f.factory, commands.WithBackoff(time.Millisecond, time.Millisecond))
	f.deps = commands.NewDeps(tx, commands.NewEventPublisher(f.notifier, nil, nil), func() time.Time { return f.now })

	t.Cleanup(func() {
		for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
			f.parties, f.expeditions, f.offers, f.courses, f.bookings, f.reviews, f.uow,
		} {
			m.AssertExpectations(t)
		}
	})
	return f
}

// expectCommit expects one transaction that commits.
func (f *fixture) expectCommit() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
}

// expectRollback expects one transaction that is rolled back without commit.
func (f *fixture) expectRollback() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

// expectEvents captures exactly len(types) notifications, checked in order on cleanup.
func (f *fixture) expectEvents(types ...ports.EventType) *[]ports.Event {
	got := &[]ports.Event{}
	if len(types) == 0 {
		return got
	}
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, e ports.Event) { *got = append(*got, e) }).
		Return(nil).
		Times(len(types))
	f.t.Cleanup(func() {
		actual := make([]ports.EventType, 0, len(*got))
		for _, e := range *got {
			actual = append(actual, e.Type)
		}
		require.Equal(f.t, types, actual)
	})
	return got
}

func sender(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.Sender)
	require.NoError(t, err)
	return a
}

func carrier(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.Carrier)
	require.NoError(t, err)
	return a
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func place(t *testing.T, city string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace("", city)
	require.NoError(t, err)
	return p
}

func expeditionDetails(t *testing.T, departure time.Time) expedition.Details {
	t.Helper()
	return expedition.Details{
		Origin:      place(t, "Paris"),
		Destination: place(t, "Lyon"),
		Departure:   departure,
		Weight:      dec("120"),
		Volume:      dec("0.8"),
		Urgency:     expedition.Normal,
	}
}

func courseDetails(t *testing.T, departure time.Time, maxWeight string) course.Details {
	t.Helper()
	return course.Details{
		Origin:      place(t, "Paris"),
		Destination: place(t, "Marseille"),
		Stops:       []string{"Lyon"},
		Departure:   departure,
		MaxWeight:   dec(maxWeight),
		PricePerKg:  dec("2.00"),
		VehicleType: "van",
	}
}

func (f *fixture) newExpedition(owner kernel.Actor, status expedition.Status) *expedition.Expedition {
	f.t.Helper()
	e, err := expedition.RestoreExpedition(kernel.NewUUID(), owner.PartyID(),
		expeditionDetails(f.t, f.now.AddDate(0, 0, 3)), nil, true, status, f.now)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) newOffer(exp *expedition.Expedition, carrierID kernel.UUID, status offer.Status) *offer.Offer {
	f.t.Helper()
	o, err := offer.RestoreOffer(kernel.NewUUID(), exp.ID(), carrierID, dec("150"), "", status, f.now, time.Time{})
	require.NoError(f.t, err)
	return o
}

func (f *fixture) newCourse(owner kernel.Actor, maxWeight string, status course.Status) *course.Course {
	f.t.Helper()
	c, err := course.RestoreCourse(kernel.NewUUID(), owner.PartyID(),
		courseDetails(f.t, f.now.AddDate(0, 0, 2), maxWeight), true, status, f.now)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) newBooking(c *course.Course, clientID kernel.UUID, weight string, status booking.Status) *booking.Booking {
	f.t.Helper()
	b, err := booking.RestoreBooking(kernel.NewUUID(), c.ID(), clientID, dec(weight), nil, 1,
		dec(weight).Mul(c.PricePerKg()), status, f.now)
	require.NoError(f.t, err)
	return b
}
