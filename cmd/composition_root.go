package cmd

import (
	"log/slog"
	"time"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/metrics"
	"freight/internal/adapters/out/notifier"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

// ClosableNotifier is a notifier holding a broker connection.
type ClosableNotifier interface {
	ports.Notifier
	Close() error
}

// NewNotifier picks the event sink named by the configuration.
func NewNotifier(cfg *Config, logger *slog.Logger) (ClosableNotifier, error) {
	switch cfg.Notifier.Driver {
	case NotifierKafka:
		return notifier.NewKafkaNotifier(notifier.KafkaConfig{
			Brokers: cfg.Notifier.KafkaBrokers,
			Topic:   cfg.Notifier.KafkaTopic,
		}), nil
	case NotifierRabbitMQ:
		return notifier.NewRabbitMQNotifier(notifier.RabbitMQConfig{
			URL:      cfg.Notifier.RabbitMQURL,
			Exchange: cfg.Notifier.RabbitMQExchange,
		})
	default:
		return notifier.NewLogNotifier(logger), nil
	}
}

type CompositionRoot struct {
	cfg        *Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pricing    services.PricingCalculator
	recorder   *metrics.Recorder
	logger     *slog.Logger
	deps       commands.Deps
	now        func() time.Time
}

func NewCompositionRoot(
	cfg *Config,
	gormDB *gorm.DB,
	sink ports.Notifier,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	pricing, err := services.NewPricingCalculator(cfg.Rates())
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.DB.LockTimeout),
		pricing:    pricing,
		recorder:   recorder,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}

	var f commands.UoWFactory = commands.UoWFactoryFunc(func() commands.UoW {
		return c.uowFactory.Create()
	})
	tx := commands.NewTransactor(f,
		commands.WithMaxRetries(cfg.Commands.MaxRetries),
		commands.WithRecorder(recorder),
	)
	events := commands.NewEventPublisher(sink, logger, recorder)
	c.deps = commands.NewDeps(tx, events, c.now)
	return c, nil
}

func (c *CompositionRoot) CreateRegisterPartyCommandHandler() commands.RegisterPartyCommandHandler {
	return commands.NewRegisterPartyCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCreateExpeditionCommandHandler() commands.CreateExpeditionCommandHandler {
	return commands.NewCreateExpeditionCommandHandler(c.deps, c.pricing)
}

func (c *CompositionRoot) CreateUpdateExpeditionCommandHandler() commands.UpdateExpeditionCommandHandler {
	return commands.NewUpdateExpeditionCommandHandler(c.deps, c.pricing)
}

func (c *CompositionRoot) CreateDeleteExpeditionCommandHandler() commands.DeleteExpeditionCommandHandler {
	return commands.NewDeleteExpeditionCommandHandler(c.deps)
}

func (c *CompositionRoot) CreatePublishExpeditionCommandHandler() commands.PublishExpeditionCommandHandler {
	return commands.NewPublishExpeditionCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCancelExpeditionCommandHandler() commands.CancelExpeditionCommandHandler {
	return commands.NewCancelExpeditionCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCompleteExpeditionCommandHandler() commands.CompleteExpeditionCommandHandler {
	return commands.NewCompleteExpeditionCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateSubmitOfferCommandHandler() commands.SubmitOfferCommandHandler {
	return commands.NewSubmitOfferCommandHandler(c.deps, c.cfg.Offers.TTL)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	return commands.NewExpireOffersCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCreateCourseCommandHandler() commands.CreateCourseCommandHandler {
	return commands.NewCreateCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateUpdateCourseCommandHandler() commands.UpdateCourseCommandHandler {
	return commands.NewUpdateCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateDeleteCourseCommandHandler() commands.DeleteCourseCommandHandler {
	return commands.NewDeleteCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateStartCourseCommandHandler() commands.StartCourseCommandHandler {
	return commands.NewStartCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCompleteCourseCommandHandler() commands.CompleteCourseCommandHandler {
	return commands.NewCompleteCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCancelCourseCommandHandler() commands.CancelCourseCommandHandler {
	return commands.NewCancelCourseCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	return commands.NewCreateBookingCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateConfirmBookingCommandHandler() commands.ConfirmBookingCommandHandler {
	return commands.NewConfirmBookingCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateCancelBookingCommandHandler() commands.CancelBookingCommandHandler {
	return commands.NewCancelBookingCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	return commands.NewSubmitReviewCommandHandler(c.deps)
}

func (c *CompositionRoot) CreateSearchExpeditionsQueryHandler() queries.SearchExpeditionsQueryHandler {
	return queries.NewSearchExpeditionsQueryHandler(c.gormDB, c.now)
}

func (c *CompositionRoot) CreateSearchCoursesQueryHandler() queries.SearchCoursesQueryHandler {
	return queries.NewSearchCoursesQueryHandler(c.gormDB, c.now)
}

func (c *CompositionRoot) CreateSearchQueryHandler() queries.SearchQueryHandler {
	return queries.NewSearchQueryHandler(
		c.CreateSearchExpeditionsQueryHandler(),
		c.CreateSearchCoursesQueryHandler(),
	)
}

func (c *CompositionRoot) CreateGetCourseLedgerQueryHandler() queries.GetCourseLedgerQueryHandler {
	return queries.NewGetCourseLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartyRatingQueryHandler() queries.GetPartyRatingQueryHandler {
	return queries.NewGetPartyRatingQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		RegisterParty:      c.CreateRegisterPartyCommandHandler(),
		CreateExpedition:   c.CreateCreateExpeditionCommandHandler(),
		UpdateExpedition:   c.CreateUpdateExpeditionCommandHandler(),
		DeleteExpedition:   c.CreateDeleteExpeditionCommandHandler(),
		PublishExpedition:  c.CreatePublishExpeditionCommandHandler(),
		CancelExpedition:   c.CreateCancelExpeditionCommandHandler(),
		CompleteExpedition: c.CreateCompleteExpeditionCommandHandler(),
		SubmitOffer:        c.CreateSubmitOfferCommandHandler(),
		AcceptOffer:        c.CreateAcceptOfferCommandHandler(),
		RejectOffer:        c.CreateRejectOfferCommandHandler(),
		CreateCourse:       c.CreateCreateCourseCommandHandler(),
		UpdateCourse:       c.CreateUpdateCourseCommandHandler(),
		DeleteCourse:       c.CreateDeleteCourseCommandHandler(),
		StartCourse:        c.CreateStartCourseCommandHandler(),
		CompleteCourse:     c.CreateCompleteCourseCommandHandler(),
		CancelCourse:       c.CreateCancelCourseCommandHandler(),
		CreateBooking:      c.CreateCreateBookingCommandHandler(),
		ConfirmBooking:     c.CreateConfirmBookingCommandHandler(),
		MarkPickedUp:       c.CreateMarkPickedUpCommandHandler(),
		MarkDelivered:      c.CreateMarkDeliveredCommandHandler(),
		CancelBooking:      c.CreateCancelBookingCommandHandler(),
		SubmitReview:       c.CreateSubmitReviewCommandHandler(),

		Search:            c.CreateSearchQueryHandler(),
		SearchExpeditions: c.CreateSearchExpeditionsQueryHandler(),
		SearchCourses:     c.CreateSearchCoursesQueryHandler(),
		GetCourseLedger:   c.CreateGetCourseLedgerQueryHandler(),
		GetPartyRating:    c.CreateGetPartyRatingQueryHandler(),
	}
}

// JobManager schedules the background jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	expirer := c.CreateExpireOffersCommandHandler()
	return jobs.NewJobManager().
		Add("offer_expiry", jobs.NewOfferExpiryJob(
			&expirer,
			c.cfg.Offers.ExpirySpec,
			c.cfg.Offers.ExpiryBatch,
			c.recorder,
			c.logger,
		))
}
