package bundle

import (
	"errors"
	"time"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
	"bundletrack/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed indicates that a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry",
)

// HistoryEntry is an immutable audit record of one action applied to one
// bundle. Entries are never mutated or deleted; ordered oldest first they
// form the bundle's ledger, the sole derivation source for the current work
// order and the audit trail.
//
// Field population rules:
//   - move entries carry a destination and no work order
//   - assign entries carry a work order and no destination
//   - split entries record the location shared by both siblings as
//     destination
//   - use entries carry neither
type HistoryEntry struct {
	id            kernel.UUID
	action        Action
	destinationID *kernel.UUID
	workOrder     string
	occurredAt    time.Time

	guard guard.ConstructorGuard
}

// NewHistoryEntry creates a validated history entry. The destination is
// required for move entries; a non-empty work order is required for assign
// entries and rejected for all others.
func NewHistoryEntry(
	id kernel.UUID,
	action Action,
	destinationID *kernel.UUID,
	workOrder string,
	occurredAt time.Time,
) (HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := action.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}
	if action == ActionMove && destinationID == nil {
		return HistoryEntry{}, errs.NewValueIsRequiredError("destinationLocation")
	}
	if destinationID != nil {
		if err := destinationID.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if action == ActionAssign && workOrder == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("workOrderNumber")
	}
	if action != ActionAssign && workOrder != "" {
		return HistoryEntry{}, errs.NewValueIsInvalidError("workOrderNumber")
	}

	entry := HistoryEntry{
		id:         id,
		action:     action,
		workOrder:  workOrder,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}
	if destinationID != nil {
		dest := *destinationID
		entry.destinationID = &dest
	}

	return entry, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence, re-applying
// the same population rules so corrupt rows are rejected at the boundary.
func RestoreHistoryEntry(
	id kernel.UUID,
	action Action,
	destinationID *kernel.UUID,
	workOrder string,
	occurredAt time.Time,
) (HistoryEntry, error) {
	return NewHistoryEntry(id, action, destinationID, workOrder, occurredAt)
}

// Validate ensures the entry was built through a constructor.
func (e HistoryEntry) Validate() error {
	return e.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// ID returns the entry's unique identifier. Stable ids make repeated
// persistence of the same entry idempotent.
func (e HistoryEntry) ID() kernel.UUID {
	return e.id
}

// Action returns the recorded action.
func (e HistoryEntry) Action() Action {
	return e.action
}

// DestinationID returns the destination location reference, nil for entries
// that did not move the bundle.
func (e HistoryEntry) DestinationID() *kernel.UUID {
	if e.destinationID == nil {
		return nil
	}
	dest := *e.destinationID
	return &dest
}

// WorkOrderNumber returns the recorded work order, empty for non-assign
// entries.
func (e HistoryEntry) WorkOrderNumber() string {
	return e.workOrder
}

// OccurredAt returns the entry timestamp.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}
