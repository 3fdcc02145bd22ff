// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models projected from persisted rows; derived fields
// (display names, current work order) are recomputed on every read and are
// never persisted.
package queries

import (
	"errors"
	"time"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/guard"
)

var ErrGetCutOrderQueryIsNotConstructed = errors.New(
	"GetCutOrderQuery must be created via NewGetCutOrderQuery constructor",
)

// GetCutOrderQuery retrieves one cut order with all of its bundles, their
// ledgers, and the derived projection fields.
type GetCutOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCutOrderQuery creates a query for one cut order.
func NewGetCutOrderQuery(orderID kernel.UUID) (GetCutOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCutOrderQuery{}, err
	}

	return GetCutOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCutOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetCutOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetCutOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetCutOrderQueryResponse is the read model for one cut order.
type GetCutOrderQueryResponse struct {
	ID                  kernel.UUID
	Code                string
	Date                time.Time
	DeclaredBundleCount int
	Active              bool
	Bundles             []BundleResponse
}

// BundleResponse is the read model for one bundle within its order.
// WorkOrderNumber renders as "none" for bundles that are not committed to
// any work order; DisplayName carries the sibling-group ordinal suffix when
// the group has more than one member.
type BundleResponse struct {
	ID              kernel.UUID
	DisplayName     string
	Number          *int
	BaseNumber      *int
	Variant         int
	Sheets          int
	Status          string
	LocationCode    string
	WorkOrderNumber string
	SSCC            string
	LUID            string
	CreatedAt       time.Time
	History         []HistoryEntryResponse
}

// HistoryEntryResponse is the read model for one ledger entry, ordered
// oldest first within its bundle.
type HistoryEntryResponse struct {
	Action          string
	DestinationCode string
	WorkOrderNumber string
	OccurredAt      time.Time
}
