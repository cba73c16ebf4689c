package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = 20 * time.Millisecond
	DefaultMaxInterval     = 500 * time.Millisecond
)

// TxFunc is the body of one transaction attempt. It must not keep state across
// attempts: a transient conflict rolls everything back and calls it again.
type TxFunc func(ctx context.Context, uow UoW) error

// Transactor runs a command body inside a unit of work and retries it on
// transient conflicts (serialization failure, deadlock, lock timeout).
//
// Every other error is terminal and returned on the first attempt. When the
// retries are exhausted the last conflict is wrapped in a ServiceUnavailableError.
type Transactor struct {
	factory         UoWFactory
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	recorder        Recorder
}

// TransactorOption customises a Transactor.
type TransactorOption func(*Transactor)

// WithMaxRetries bounds the number of retries after the first attempt.
func WithMaxRetries(n int) TransactorOption {
	return func(t *Transactor) {
		t.maxRetries = uint64(max(n, 0))
	}
}

// WithBackoff sets the exponential backoff between attempts.
func WithBackoff(initial, maxInterval time.Duration) TransactorOption {
	return func(t *Transactor) {
		t.initialInterval = initial
		t.maxInterval = maxInterval
	}
}

// WithRecorder reports command outcomes and retries.
func WithRecorder(r Recorder) TransactorOption {
	return func(t *Transactor) {
		if r != nil {
			t.recorder = r
		}
	}
}

func NewTransactor(factory UoWFactory, opts ...TransactorOption) *Transactor {
	t := &Transactor{
		factory:         factory,
		maxRetries:      DefaultMaxRetries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
		recorder:        NopRecorder{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run executes fn in a fresh unit of work per attempt and records the outcome under name.
func (t *Transactor) Run(ctx context.Context, name string, fn TxFunc) error {
	attempts := 0
	operation := func() error {
		attempts++
		err := t.attempt(ctx, fn)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, errs.ErrTransientConflict):
			if uint64(attempts) <= t.maxRetries {
				t.recorder.CommandRetried(name)
			}
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.initialInterval
	b.MaxInterval = t.maxInterval
	b.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, t.maxRetries), ctx))
	if errors.Is(err, errs.ErrTransientConflict) {
		err = errs.NewServiceUnavailableError(attempts, err)
	}

	t.recorder.CommandCompleted(name, errs.Kind(err))
	return err
}

func (t *Transactor) attempt(ctx context.Context, fn TxFunc) error {
	uow := t.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(ctx, uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
