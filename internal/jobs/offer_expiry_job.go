package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOfferExpirySpec runs the sweep every minute, at second zero.
const DefaultOfferExpirySpec = "0 * * * * *"

type OfferExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireOffersCommand) (int, error)
}

type ExpiryRecorder interface {
	OffersExpired(n int)
}

// OfferExpiryJob turns pending offers past their deadline into EXPIRED.
// A run that is still busy when the next tick fires makes that tick a no-op.
type OfferExpiryJob struct {
	handler  OfferExpirer
	spec     string
	batch    int
	timeout  time.Duration
	recorder ExpiryRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOfferExpiryJob(
	handler OfferExpirer,
	spec string,
	batch int,
	recorder ExpiryRecorder,
	logger *slog.Logger,
) *OfferExpiryJob {
	if spec == "" {
		spec = DefaultOfferExpirySpec
	}
	logger = logger.With("component", "offer_expiry_job")
	cronLogger := cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	return &OfferExpiryJob{
		handler:  handler,
		spec:     spec,
		batch:    batch,
		timeout:  30 * time.Second,
		recorder: recorder,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

func (j *OfferExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started", "spec", j.spec)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *OfferExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}

func (j *OfferExpiryJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.Run(ctx)
}

// Run performs one sweep and returns how many offers expired.
func (j *OfferExpiryJob) Run(ctx context.Context) int {
	cmd, err := commands.NewExpireOffersCommand(j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid offer expiry batch", "batch", j.batch, "error", err)
		return 0
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if expired > 0 {
		if j.recorder != nil {
			j.recorder.OffersExpired(expired)
		}
		j.logger.InfoContext(ctx, "Offers expired", "count", expired)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiry job failed", "error", err)
	}
	return expired
}
