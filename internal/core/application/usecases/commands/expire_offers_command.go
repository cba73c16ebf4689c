package commands

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const DefaultExpiryBatch = 100

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

// ExpireOffersCommand is issued by the scheduler to expire pending offers that passed
// their deadline. Batch bounds how many offers one run looks at.
type ExpireOffersCommand struct {
	batch int

	guard guard.ConstructorGuard
}

func NewExpireOffersCommand(batch int) (ExpireOffersCommand, error) {
	if batch == 0 {
		batch = DefaultExpiryBatch
	}
	if batch < 0 {
		return ExpireOffersCommand{}, errs.NewValueIsOutOfRangeError("batch", batch, 1, "unbounded")
	}
	return ExpireOffersCommand{batch: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOffersCommandIsNotConstructed)
}

func (c ExpireOffersCommand) Batch() int {
	return c.batch
}
