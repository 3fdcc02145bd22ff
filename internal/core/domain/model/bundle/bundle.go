package bundle

import (
	"errors"
	"fmt"
	"time"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
)

var (
	// ErrBundleIsNotConstructed is returned when a Bundle instance was not
	// created through NewBundle or RestoreBundle.
	ErrBundleIsNotConstructed = errors.New("Bundle must be created via NewBundle or RestoreBundle")

	// ErrBundleNumberNotResolvable indicates a split was requested on a
	// bundle whose stored number is absent, so no base number exists to
	// group siblings under.
	ErrBundleNumberNotResolvable = errors.New("bundle number is not resolvable to a base number")
)

// Bundle is the aggregate root for a physical unit of cut material. It owns
// its append-only history ledger and enforces the lifecycle state machine:
// every mutation goes through one of the action methods, each of which
// appends exactly one history entry.
//
// Invariants:
//   - sheets is never negative
//   - Used is only reachable from Assigned and is terminal
//   - a bundle without a base number cannot be split
//   - split siblings share a base number and have disjoint variants >= 1
//
// The version field carries the optimistic-concurrency counter: 1 for a
// freshly created bundle, otherwise the value loaded from persistence.
// Conditional updates keyed on it guarantee that at most one split commits
// per sibling-group variant.
type Bundle struct {
	id         kernel.UUID
	orderID    kernel.UUID
	number     Number
	sheets     int
	status     Status
	locationID *kernel.UUID
	sscc       string
	luid       string
	createdAt  time.Time

	// history holds all entries oldest first; entries before the
	// persistedHistory index are already stored.
	history          []HistoryEntry
	persistedHistory int

	version       int
	isConstructed bool
}

// NewBundle creates a fresh bundle in Available status at the given starting
// location. A synthetic move entry recording the starting location is
// appended so the ledger is never empty. Initial bundles created with a
// plain number carry variant 1 implicitly.
func NewBundle(
	id kernel.UUID,
	orderID kernel.UUID,
	number Number,
	sheets int,
	locationID kernel.UUID,
	createdAt time.Time,
) (*Bundle, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		locationID.Validate(),
	); err != nil {
		return nil, err
	}
	if sheets < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sheets",
			fmt.Errorf("%d is not greater than 0", sheets))
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	loc := locationID
	b := &Bundle{
		id:            id,
		orderID:       orderID,
		number:        number,
		sheets:        sheets,
		status:        Available,
		locationID:    &loc,
		createdAt:     createdAt,
		version:       1,
		isConstructed: true,
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionMove, &loc, "", createdAt)
	if err != nil {
		return nil, err
	}
	b.history = append(b.history, entry)

	return b, nil
}

// RestoreBundle reconstructs a bundle from persistence. History must be
// ordered oldest first; all restored entries are treated as already stored.
func RestoreBundle(
	id kernel.UUID,
	orderID kernel.UUID,
	number Number,
	sheets int,
	status Status,
	locationID *kernel.UUID,
	sscc string,
	luid string,
	createdAt time.Time,
	history []HistoryEntry,
	version int,
) (*Bundle, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if sheets < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sheets",
			fmt.Errorf("%d is negative", sheets))
	}

	b := &Bundle{
		id:               id,
		orderID:          orderID,
		number:           number,
		sheets:           sheets,
		status:           status,
		sscc:             sscc,
		luid:             luid,
		createdAt:        createdAt,
		history:          append([]HistoryEntry(nil), history...),
		persistedHistory: len(history),
		version:          version,
		isConstructed:    true,
	}
	if locationID != nil {
		loc := *locationID
		b.locationID = &loc
	}

	return b, nil
}

// Validate ensures the bundle was built through a constructor.
func (b *Bundle) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBundleIsNotConstructed
	}
	return nil
}

// ID returns the bundle's unique identifier.
func (b *Bundle) ID() kernel.UUID {
	return b.id
}

// OrderID returns the owning cut order's identifier.
func (b *Bundle) OrderID() kernel.UUID {
	return b.orderID
}

// Number returns the bundle number in its codec form.
func (b *Bundle) Number() Number {
	return b.number
}

// Sheets returns the current sheet count.
func (b *Bundle) Sheets() int {
	return b.sheets
}

// Status returns the current lifecycle status.
func (b *Bundle) Status() Status {
	return b.status
}

// LocationID returns the current location reference, nil only transiently.
func (b *Bundle) LocationID() *kernel.UUID {
	if b.locationID == nil {
		return nil
	}
	loc := *b.locationID
	return &loc
}

// SSCC returns the external pallet identifier.
func (b *Bundle) SSCC() string {
	return b.sscc
}

// LUID returns the external logistics unit identifier.
func (b *Bundle) LUID() string {
	return b.luid
}

// CreatedAt returns the creation timestamp, used to order split siblings
// for display naming.
func (b *Bundle) CreatedAt() time.Time {
	return b.createdAt
}

// Version returns the optimistic-concurrency counter as loaded.
func (b *Bundle) Version() int {
	return b.version
}

// History returns the full ledger, oldest first.
func (b *Bundle) History() []HistoryEntry {
	return append([]HistoryEntry(nil), b.history...)
}

// PendingHistory returns the entries appended since the bundle was loaded.
// Repositories persist exactly these on update.
func (b *Bundle) PendingHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), b.history[b.persistedHistory:]...)
}

// Move relocates the bundle. Any status allows moving; status is unchanged.
func (b *Bundle) Move(locationID kernel.UUID, at time.Time) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	loc := locationID
	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionMove, &loc, "", at)
	if err != nil {
		return err
	}

	b.locationID = &loc
	b.history = append(b.history, entry)
	return nil
}

// Assign commits the bundle to a work order. A non-empty work order number
// is mandatory; the work order is recorded only in the history entry, from
// which the current work order is derived.
func (b *Bundle) Assign(workOrder string, at time.Time) error {
	if workOrder == "" {
		return errs.NewValueIsRequiredError("workOrderNumber")
	}

	newStatus, err := b.status.Assign()
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionAssign, nil, workOrder, at)
	if err != nil {
		return err
	}

	b.status = newStatus
	b.history = append(b.history, entry)
	return nil
}

// ValidateUse checks the use precondition without mutating, so batch
// callers can validate every target before touching any of them.
func (b *Bundle) ValidateUse() error {
	return b.status.ValidateUse()
}

// Use consumes the bundle's material. Only Assigned bundles can be used.
func (b *Bundle) Use(at time.Time) error {
	newStatus, err := b.status.Use()
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionUse, nil, "", at)
	if err != nil {
		return err
	}

	b.status = newStatus
	b.history = append(b.history, entry)
	return nil
}

// SplitOff applies the original-bundle side of a split: reduces the sheet
// count by k, overwrites the external identifiers with the caller-supplied
// ones, promotes a plain number into the encoded form (variant 1), and
// appends a split entry referencing the current location.
//
// The sibling bundle is built separately with SplitSibling; both sides must
// share the same timestamp.
func (b *Bundle) SplitOff(k int, sscc, luid string, at time.Time) error {
	if k <= 0 || k >= b.sheets {
		return errs.NewValueIsOutOfRangeError("sheets", k, 1, b.sheets-1)
	}
	if sscc == "" {
		return errs.NewValueIsRequiredError("sscc")
	}
	if luid == "" {
		return errs.NewValueIsRequiredError("luid")
	}
	if !b.number.HasBase() {
		return ErrBundleNumberNotResolvable
	}

	promoted, err := b.number.Promote()
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionSplit, b.locationID, "", at)
	if err != nil {
		return err
	}

	b.number = promoted
	b.sheets -= k
	b.sscc = sscc
	b.luid = luid
	b.history = append(b.history, entry)
	return nil
}

// SplitSibling constructs the new bundle produced by splitting k sheets off
// the original. The sibling shares the original's order, status, and
// location at the moment of the split, carries the encoded sibling number,
// and starts its ledger with a split entry at the same timestamp as the
// original's.
func SplitSibling(
	id kernel.UUID,
	original *Bundle,
	number Number,
	k int,
	sscc, luid string,
	at time.Time,
) (*Bundle, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sheets",
			fmt.Errorf("%d is not greater than 0", k))
	}
	if sscc == "" {
		return nil, errs.NewValueIsRequiredError("sscc")
	}
	if luid == "" {
		return nil, errs.NewValueIsRequiredError("luid")
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), ActionSplit, original.LocationID(), "", at)
	if err != nil {
		return nil, err
	}

	sibling := &Bundle{
		id:            id,
		orderID:       original.orderID,
		number:        number,
		sheets:        k,
		status:        original.status,
		locationID:    original.LocationID(),
		sscc:          sscc,
		luid:          luid,
		createdAt:     at,
		history:       []HistoryEntry{entry},
		version:       1,
		isConstructed: true,
	}

	return sibling, nil
}

// CurrentWorkOrder derives the bundle's work order from the ledger: the
// latest entry carrying a non-empty work order number. It returns the empty
// string when the bundle is Available or was never assigned. A move after an
// assign does not clear the work order; only the ledger decides.
func (b *Bundle) CurrentWorkOrder() string {
	if b.status == Available {
		return ""
	}
	for i := len(b.history) - 1; i >= 0; i-- {
		if wo := b.history[i].WorkOrderNumber(); wo != "" {
			return wo
		}
	}
	return ""
}
