package commands

import (
	"errors"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/guard"
)

var ErrRefreshOrderActivityCommandIsNotConstructed = errors.New(
	"RefreshOrderActivityCommand must be created via NewRefreshOrderActivityCommand constructor",
)

// RefreshOrderActivityCommand requests re-derivation of one cut order's
// activity flag from the aggregate status of its bundles.
type RefreshOrderActivityCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshOrderActivityCommand creates a refresh command for one order.
func NewRefreshOrderActivityCommand(orderID kernel.UUID) (RefreshOrderActivityCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RefreshOrderActivityCommand{}, err
	}

	return RefreshOrderActivityCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshOrderActivityCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrderActivityCommandIsNotConstructed)
}

// OrderID returns the order whose activity flag is re-derived.
func (c RefreshOrderActivityCommand) OrderID() kernel.UUID {
	return c.orderID
}
