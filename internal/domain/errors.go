package domain

import (
	"errors"
	"fmt"
)

// PlaceRole distinguishes which endpoint of a route request failed to
// resolve. The user-facing message differs between the two.
type PlaceRole string

const (
	RoleOrigin      PlaceRole = "origin"
	RoleDestination PlaceRole = "destination"
)

// LocationNotFoundError means a place name did not resolve against the
// catalog. Recoverable: the user must correct the input.
type LocationNotFoundError struct {
	Role PlaceRole
	Name string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("domain: %s %q not found", e.Role, e.Name)
}

// ErrCurrentLocationUnavailable means "My Location" was requested before any
// geolocation fix arrived. Distinct from LocationNotFoundError because the
// remedy is waiting for GPS rather than fixing a typo.
var ErrCurrentLocationUnavailable = errors.New("domain: current location unavailable")

// ErrNoActiveRoute means a share or clear was requested with no route set.
var ErrNoActiveRoute = errors.New("domain: no active route")
