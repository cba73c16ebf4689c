package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRegisterPartyCommandIsNotConstructed = errors.New(
	"RegisterPartyCommand must be created via NewRegisterPartyCommand constructor",
)

// RegisterPartyCommand records a sender or carrier issued by the identity service.
// The engine keeps only the id, role and display name; credentials live elsewhere.
//
// Example:
//
//	cmd, err := NewRegisterPartyCommand(partyID, kernel.Carrier, "Transports Martin")
//	if err != nil {
//	    return fmt.Errorf("invalid party: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type RegisterPartyCommand struct { //nolint:recvcheck //using for validation
	partyID kernel.UUID
	role    kernel.Role
	name    string

	guard guard.ConstructorGuard
}

func NewRegisterPartyCommand(partyID kernel.UUID, role kernel.Role, name string) (RegisterPartyCommand, error) {
	cmd := RegisterPartyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartyID(partyID),
		cmd.setRole(role),
		cmd.setName(name),
	); err != nil {
		return RegisterPartyCommand{}, err
	}

	return cmd, nil
}

func (c RegisterPartyCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartyCommandIsNotConstructed)
}

func (c RegisterPartyCommand) PartyID() kernel.UUID {
	return c.partyID
}

func (c RegisterPartyCommand) Role() kernel.Role {
	return c.role
}

func (c RegisterPartyCommand) Name() string {
	return c.name
}

func (c *RegisterPartyCommand) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.partyID = id
	return nil
}

func (c *RegisterPartyCommand) setRole(role kernel.Role) error {
	if role != kernel.Sender && role != kernel.Carrier {
		return errs.NewValueIsOutOfRangeError("role", role, kernel.Sender, kernel.Carrier)
	}

	c.role = role
	return nil
}

func (c *RegisterPartyCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
