// Package location contains the Location entity, a uniquely coded site that
// bundles reference by identity and never own.
package location

import (
	"errors"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
)

// ErrLocationIsNotConstructed is returned when a Location instance was not
// created through NewLocation or RestoreLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation or RestoreLocation")

// Location is a site where bundles are stored. The code is the unique
// business key; the id is the reference bundles carry.
type Location struct {
	id   kernel.UUID
	code string

	isConstructed bool
}

// NewLocation creates a location with a non-empty site code.
func NewLocation(id kernel.UUID, code string) (*Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &Location{
		id:            id,
		code:          code,
		isConstructed: true,
	}, nil
}

// RestoreLocation reconstructs a location from persistence.
func RestoreLocation(id kernel.UUID, code string) (*Location, error) {
	return NewLocation(id, code)
}

// Validate ensures the location was built through a constructor.
func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

// ID returns the location's unique identifier.
func (l *Location) ID() kernel.UUID {
	return l.id
}

// Code returns the unique site code.
func (l *Location) Code() string {
	return l.code
}
