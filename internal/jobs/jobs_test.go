package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExpirer struct {
	mock.Mock
}

func (m *mockExpirer) Handle(ctx context.Context, cmd commands.ExpireOffersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) OffersExpired(n int) {
	m.Called(n)
}

var discard = slog.New(slog.DiscardHandler)

func TestOfferExpiryJob_RecordsExpiredOffers(t *testing.T) {
	expirer := &mockExpirer{}
	expirer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpireOffersCommand) bool {
		return cmd.Batch() == 25
	})).Return(3, nil).Once()
	recorder := &mockRecorder{}
	recorder.On("OffersExpired", 3).Once()

	n := jobs.NewOfferExpiryJob(expirer, "", 25, recorder, discard).Run(t.Context())

	assert.Equal(t, 3, n)
	expirer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestOfferExpiryJob_PartialFailureStillCounts(t *testing.T) {
	expirer := &mockExpirer{}
	expirer.On("Handle", mock.Anything, mock.Anything).Return(2, errors.New("expedition x: boom"))
	recorder := &mockRecorder{}
	recorder.On("OffersExpired", 2).Once()

	n := jobs.NewOfferExpiryJob(expirer, "", 0, recorder, discard).Run(t.Context())

	assert.Equal(t, 2, n)
	recorder.AssertExpectations(t)
}

func TestOfferExpiryJob_NothingToExpire(t *testing.T) {
	expirer := &mockExpirer{}
	expirer.On("Handle", mock.Anything, mock.Anything).Return(0, nil)
	recorder := &mockRecorder{}

	jobs.NewOfferExpiryJob(expirer, "", 0, recorder, discard).Run(t.Context())

	recorder.AssertNotCalled(t, "OffersExpired", mock.Anything)
}

func TestOfferExpiryJob_InvalidBatchSkipsHandler(t *testing.T) {
	expirer := &mockExpirer{}

	n := jobs.NewOfferExpiryJob(expirer, "", -1, nil, discard).Run(t.Context())

	assert.Zero(t, n)
	expirer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestOfferExpiryJob_RejectsBadSchedule(t *testing.T) {
	job := jobs.NewOfferExpiryJob(&mockExpirer{}, "not a cron spec", 0, nil, discard)
	assert.Error(t, job.Start())
}

func TestOfferExpiryJob_SkipsTicksWhileSweepRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("waits on the scheduler")
	}
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	expirer := &mockExpirer{}
	expirer.On("Handle", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		started <- struct{}{}
		<-release
	}).Return(0, nil)

	job := jobs.NewOfferExpiryJob(expirer, "@every 1s", 0, nil, discard)
	require.NoError(t, job.Start())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("first sweep never ran")
	}
	// Two more ticks fire while the first sweep is blocked.
	time.Sleep(2500 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		job.Stop()
		close(stopped)
	}()
	close(release)
	<-stopped

	expirer.AssertNumberOfCalls(t, "Handle", 1)
}

type stubJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j stubJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j stubJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager_StartAndStopInOrder(t *testing.T) {
	var log []string
	jm := jobs.NewJobManager().
		Add("a", stubJob{name: "a", log: &log}).
		Add("b", stubJob{name: "b", log: &log})

	assert.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestJobManager_RollsBackOnStartFailure(t *testing.T) {
	var log []string
	jm := jobs.NewJobManager().
		Add("a", stubJob{name: "a", log: &log}).
		Add("b", stubJob{name: "b", log: &log, startErr: errors.New("bad spec")})

	err := jm.StartAll()

	assert.ErrorContains(t, err, "failed to start b job")
	assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
}
