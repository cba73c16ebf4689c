package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Role is the marketplace side a party acts on.
type Role int

const (
	// Anonymous is the role of callers without an identity. They may only search.
	Anonymous Role = iota
	Sender
	Carrier
)

// String returns the capitalized role name for logs and errors; tokens use ParseRole's lowercase form.
func (r Role) String() string {
	switch r {
	case Anonymous:
		return "Anonymous"
	case Sender:
		return "Sender"
	case Carrier:
		return "Carrier"
	default:
		return "Unknown"
	}
}

// ParseRole maps the lower-case wire names used in tokens and requests.
func ParseRole(s string) (Role, error) {
	switch s {
	case "sender":
		return Sender, nil
	case "carrier":
		return Carrier, nil
	case "", "anonymous":
		return Anonymous, nil
	default:
		return Anonymous, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the identity context supplied with every command: who calls and in which role.
// The engine never authenticates; it only authorizes against the Actor.
type Actor struct {
	partyID UUID
	role    Role
}

// NewActor builds an authenticated actor.
func NewActor(partyID UUID, role Role) (Actor, error) {
	if err := partyID.Validate(); err != nil {
		return Actor{}, err
	}
	if role != Sender && role != Carrier {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s cannot act", role))
	}
	return Actor{partyID: partyID, role: role}, nil
}

// AnonymousActor returns the identity of an unauthenticated caller.
func AnonymousActor() Actor {
	return Actor{role: Anonymous}
}

// PartyID is the nil UUID for an anonymous actor.
func (a Actor) PartyID() UUID {
	return a.partyID
}

// Role returns the role the actor authenticated with.
func (a Actor) Role() Role {
	return a.role
}

// IsAnonymous reports whether the request carried no identity. Anonymous actors may
// search but not run commands.
func (a Actor) IsAnonymous() bool {
	return a.role == Anonymous
}

// Is reports whether the actor is the given party.
func (a Actor) Is(partyID UUID) bool {
	return !a.IsAnonymous() && a.partyID.IsEqual(partyID)
}

// Require fails with an UnauthorizedError unless the actor acts in role.
func (a Actor) Require(action string, role Role) error {
	if a.role != role {
		return errs.NewUnauthorizedError(action, fmt.Sprintf("requires role %s, caller is %s", role, a.role))
	}
	return nil
}

// RequireOwner fails with an UnauthorizedError unless the actor is ownerID.
func (a Actor) RequireOwner(action string, ownerID UUID) error {
	if !a.Is(ownerID) {
		return errs.NewUnauthorizedError(action, "caller is not the owner")
	}
	return nil
}
