package kernel

import (
	"strings"

	"freight/internal/pkg/errs"
)

// Place is a street address within a city. Search matches against both parts.
type Place struct {
	address string
	city    string
}

// NewPlace builds a Place. The city is mandatory, the address may be empty.
func NewPlace(address, city string) (Place, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Place{}, errs.NewValueIsRequiredError("city")
	}
	return Place{address: strings.TrimSpace(address), city: city}, nil
}

// Address is the street part, possibly empty.
func (p Place) Address() string {
	return p.address
}

// City is always set.
func (p Place) City() string {
	return p.city
}

// Validate rejects a zero Place.
func (p Place) Validate() error {
	if p.city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	return nil
}

// Matches reports whether term occurs, case-insensitively, in the city or address.
// An empty term matches everything.
func (p Place) Matches(term string) bool {
	return ContainsFold(p.city, term) || ContainsFold(p.address, term)
}

// ContainsFold is a case-insensitive strings.Contains.
func ContainsFold(s, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
