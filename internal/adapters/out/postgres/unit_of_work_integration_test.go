package postgres_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/party"
	"freight/internal/core/domain/model/review"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the unit of work and the repositories
// against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB, 300*time.Millisecond)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) newParty(role kernel.Role) *party.Party {
	p, err := party.NewParty(kernel.NewUUID(), role, "Transports Martin")
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) newCourse(carrierID kernel.UUID, maxWeight string) *course.Course {
	origin, err := kernel.NewPlace("12 rue de Rivoli", "Paris")
	suite.Require().NoError(err)
	destination, err := kernel.NewPlace("", "Lyon")
	suite.Require().NoError(err)
	maxVolume := decimal.RequireFromString("12.5")
	c, err := course.NewCourse(kernel.NewUUID(), carrierID, course.Details{
		Origin:      origin,
		Destination: destination,
		Stops:       []string{"Dijon", "Mâcon"},
		Departure:   now.Add(24 * time.Hour),
		Arrival:     now.Add(30 * time.Hour),
		MaxWeight:   decimal.RequireFromString(maxWeight),
		MaxVolume:   &maxVolume,
		PricePerKg:  decimal.RequireFromString("1.25"),
		VehicleType: "truck",
	}, now)
	suite.Require().NoError(err)
	return c
}

// seed commits a carrier with one course and returns both.
func (suite *UnitOfWorkIntegrationTestSuite) seed(maxWeight string) (*party.Party, *course.Course) {
	ctx := context.Background()
	carrier := suite.newParty(kernel.Carrier)
	c := suite.newCourse(carrier.ID(), maxWeight)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PartyRepository().Add(ctx, carrier))
	suite.Require().NoError(uow.CourseRepository().Add(ctx, c))
	suite.Require().NoError(uow.Commit(ctx))
	return carrier, c
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Error(uow.Commit(ctx), "commit without an open transaction")
	suite.Error(uow.Rollback(ctx), "rollback without an open transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCourseRoundTrip() {
	ctx := context.Background()
	_, c := suite.seed("100")

	got, err := suite.factory.Create().CourseRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)

	suite.True(got.ID().IsEqual(c.ID()))
	suite.Equal(course.Available, got.Status())
	suite.Equal([]string{"Dijon", "Mâcon"}, got.Details().Stops)
	suite.Equal("12 rue de Rivoli", got.Details().Origin.Address())
	suite.True(got.MaxWeight().Equal(decimal.RequireFromString("100")))
	suite.Require().NotNil(got.Details().MaxVolume)
	suite.Equal("12.5", got.Details().MaxVolume.String())
	suite.True(got.Details().Arrival.Equal(now.Add(30 * time.Hour)))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsEveryRepository() {
	ctx := context.Background()
	carrier := suite.newParty(kernel.Carrier)
	c := suite.newCourse(carrier.ID(), "100")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PartyRepository().Add(ctx, carrier))
	suite.Require().NoError(uow.CourseRepository().Add(ctx, c))
	_, err := uow.CourseRepository().Get(ctx, c.ID())
	suite.Require().NoError(err, "visible inside the transaction")
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.CourseRepository().Get(ctx, c.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.PartyRepository().Get(ctx, carrier.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBookingsFollowTheirCourse() {
	ctx := context.Background()
	_, c := suite.seed("100")
	client := suite.newParty(kernel.Sender)
	suite.Require().NoError(suite.factory.Create().PartyRepository().Add(ctx, client))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.CourseRepository().GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)
	b, err := booking.NewBooking(kernel.NewUUID(), locked.ID(), client.ID(),
		decimal.RequireFromString("40"), nil, 2, decimal.RequireFromString("50"), now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.BookingRepository().Add(ctx, b))
	suite.Require().NoError(uow.Commit(ctx))

	bookings, err := suite.factory.Create().BookingRepository().ListByCourse(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().Len(bookings, 1)
	suite.Equal(booking.Pending, bookings[0].Status())
	suite.Nil(bookings[0].Volume())
	suite.Equal(2, bookings[0].Packages())

	orphan, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), client.ID(),
		decimal.RequireFromString("1"), nil, 1, decimal.RequireFromString("1"), now)
	suite.Require().NoError(err)
	err = suite.factory.Create().BookingRepository().Add(ctx, orphan)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "foreign key to an unknown course")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateOfUnsavedAggregateIsNotFound() {
	ctx := context.Background()
	uow := suite.factory.Create()

	carrier := suite.newParty(kernel.Carrier)
	c := suite.newCourse(carrier.ID(), "100")
	origin, err := kernel.NewPlace("", "Paris")
	suite.Require().NoError(err)
	destination, err := kernel.NewPlace("", "Lyon")
	suite.Require().NoError(err)
	e, err := expedition.NewExpedition(kernel.NewUUID(), kernel.NewUUID(), expedition.Details{
		Origin:      origin,
		Destination: destination,
		Departure:   now.Add(24 * time.Hour),
		Weight:      decimal.RequireFromString("10"),
		Volume:      decimal.RequireFromString("1"),
		Urgency:     expedition.Normal,
	}, false, now)
	suite.Require().NoError(err)
	o, err := offer.NewOffer(kernel.NewUUID(), e.ID(), carrier.ID(), decimal.RequireFromString("90"), "", now, time.Hour)
	suite.Require().NoError(err)
	b, err := booking.NewBooking(kernel.NewUUID(), c.ID(), kernel.NewUUID(),
		decimal.RequireFromString("5"), nil, 1, decimal.RequireFromString("6.25"), now)
	suite.Require().NoError(err)

	updates := map[string]func() error{
		"party":      func() error { return uow.PartyRepository().Update(ctx, carrier) },
		"course":     func() error { return uow.CourseRepository().Update(ctx, c) },
		"expedition": func() error { return uow.ExpeditionRepository().Update(ctx, e) },
		"offer":      func() error { return uow.OfferRepository().Update(ctx, o) },
		"booking":    func() error { return uow.BookingRepository().Update(ctx, b) },
	}
	for name, update := range updates {
		suite.Run(name, func() {
			err := update()
			suite.ErrorIs(err, errs.ErrObjectNotFound)
			var notFound *errs.ObjectNotFoundError
			suite.Require().ErrorAs(err, &notFound)
			suite.Equal(name, notFound.ParamName)
		})
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockTimeoutIsTransient() {
	ctx := context.Background()
	_, c := suite.seed("100")

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.CourseRepository().GetForUpdate(ctx, c.ID())
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()
	_, err = waiter.CourseRepository().GetForUpdate(ctx, c.ID())

	suite.ErrorIs(err, errs.ErrTransientConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicateReviewIsRejectedByIndex() {
	ctx := context.Background()
	reviewer := suite.newParty(kernel.Sender)
	reviewed := suite.newParty(kernel.Carrier)
	parties := suite.factory.Create().PartyRepository()
	suite.Require().NoError(parties.Add(ctx, reviewer))
	suite.Require().NoError(parties.Add(ctx, reviewed))

	reviews := suite.factory.Create().ReviewRepository()
	first, err := review.NewReview(kernel.NewUUID(), reviewer.ID(), reviewed.ID(), 5, "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(reviews.Add(ctx, first))

	exists, err := reviews.Exists(ctx, reviewer.ID(), reviewed.ID())
	suite.Require().NoError(err)
	suite.True(exists)

	second, err := review.NewReview(kernel.NewUUID(), reviewer.ID(), reviewed.ID(), 1, "", now)
	suite.Require().NoError(err)
	suite.ErrorIs(reviews.Add(ctx, second), errs.ErrDuplicateReview)
}

// TestConcurrentBookingsNeverOversell races more reservations than the course
// can hold through the real command handler.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentBookingsNeverOversell() {
	ctx := context.Background()
	_, c := suite.seed("100")
	client := suite.newParty(kernel.Sender)
	suite.Require().NoError(suite.factory.Create().PartyRepository().Add(ctx, client))
	actor, err := kernel.NewActor(client.ID(), kernel.Sender)
	suite.Require().NoError(err)

	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.pg.DB, 5*time.Second)
	tx := commands.NewTransactor(commands.UoWFactoryFunc(func() commands.UoW {
		return factory.Create()
	}), commands.WithMaxRetries(10))
	handler := commands.NewCreateBookingCommandHandler(
		commands.NewDeps(tx, commands.NewEventPublisher(nil, nil, nil), func() time.Time { return now }))

	const attempts = 10
	var booked, refused atomic.Int32
	var g errgroup.Group
	for range attempts {
		g.Go(func() error {
			cmd, err := commands.NewCreateBookingCommand(actor, kernel.NewUUID(), c.ID(),
				decimal.RequireFromString("15"), nil, 1)
			if err != nil {
				return err
			}
			err = handler.Handle(ctx, cmd)
			switch {
			case err == nil:
				booked.Add(1)
			case errors.Is(err, errs.ErrCapacityExceeded):
				refused.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	suite.EqualValues(6, booked.Load())
	suite.EqualValues(attempts-6, refused.Load())

	bookings, err := suite.factory.Create().BookingRepository().ListByCourse(ctx, c.ID())
	suite.Require().NoError(err)
	total := decimal.Zero
	for _, b := range bookings {
		total = total.Add(b.Weight())
	}
	suite.Equal("90", total.String())
}
