package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero value, which every
// aggregate constructor rejects as an identifier.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies parties, expeditions, courses, offers, bookings and reviews.
// It wraps github.com/google/uuid so that the domain never handles a raw uuid.UUID
// and so that the nil identifier can be told apart from a real one.
//
// The zero value is invalid. Build a UUID with NewUUID for a new aggregate, or with
// UUIDFromString / UUIDFromBytes when the identifier comes from a request or a row.
//
// UUID is a comparable value type and is safe to share between goroutines.
//
// Example:
//
//	courseID := kernel.NewUUID()
//
//	id, err := kernel.UUIDFromString(c.Param("courseId"))
//	if err != nil {
//	    return err // ValueIsInvalidError, mapped to 400
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. Command handlers call it when
// they create an aggregate; the result always passes Validate.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an identifier received from outside, in any form uuid.Parse
// accepts (hyphenated, braced, urn:uuid: prefixed).
//
// Returns:
//   - ValueIsInvalidError when s is not a UUID
//   - ErrUUIDIsNotConstructed when s is the nil UUID
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return UUIDFromBytes(id[:])
}

// UUIDFromBytes builds a UUID from its 16-byte form, as stored by the postgres adapter
// and scanned by the read models. Any other length is an error, and so is the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical lowercase hyphenated form, used in logs, event keys,
// error messages and HTTP responses.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence and wire mapping. Despite the
// name it is an array, not a slice; take id.Bytes()[:] for a []byte.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Less orders identifiers bytewise, the same order PostgreSQL applies to uuid columns.
// Search results use it as their last sort key, so ties on every other key still
// come back in a stable order.
func (u UUID) Less(other UUID) bool {
	for i := range u.id {
		if u.id[i] != other.id[i] {
			return u.id[i] < other.id[i]
		}
	}
	return false
}

// Validate rejects the nil UUID.
//
// Example:
//
//	if err := cmd.TargetID().Validate(); err != nil {
//	    return err
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
