package commands

import (
	"errors"
	"fmt"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
	"bundletrack/internal/pkg/guard"
)

var ErrSplitBundleCommandIsNotConstructed = errors.New(
	"SplitBundleCommand must be created via NewSplitBundleCommand constructor",
)

// SplitBundleCommand represents a request to divide a bundle into two
// siblings: the original keeps its sheet count minus the requested sheets,
// the new sibling carries the requested sheets. Both sides must be given
// fresh external pallet identifiers (sscc, luid), since the physical unit
// is re-palletized by the split.
type SplitBundleCommand struct { //nolint:recvcheck //using for validation
	bundleID     kernel.UUID
	orderID      kernel.UUID
	sheets       int
	originalSSCC string
	originalLUID string
	newSSCC      string
	newLUID      string

	guard guard.ConstructorGuard
}

// NewSplitBundleCommand creates a split command. The upper bound on sheets
// depends on the bundle's current count and is enforced by the domain once
// the bundle is loaded.
func NewSplitBundleCommand(
	bundleID kernel.UUID,
	orderID kernel.UUID,
	sheets int,
	originalSSCC, originalLUID string,
	newSSCC, newLUID string,
) (SplitBundleCommand, error) {
	cmd := SplitBundleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBundleID(bundleID),
		cmd.setOrderID(orderID),
		cmd.setSheets(sheets),
		cmd.setIdentifiers(originalSSCC, originalLUID, newSSCC, newLUID),
	); err != nil {
		return SplitBundleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitBundleCommand) Validate() error {
	return c.guard.Validate(ErrSplitBundleCommandIsNotConstructed)
}

// BundleID returns the bundle to split.
func (c SplitBundleCommand) BundleID() kernel.UUID {
	return c.bundleID
}

// OrderID returns the cut order the bundle is expected to belong to.
func (c SplitBundleCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Sheets returns the sheet count to move into the new sibling.
func (c SplitBundleCommand) Sheets() int {
	return c.sheets
}

// OriginalSSCC returns the pallet identifier for the original bundle.
func (c SplitBundleCommand) OriginalSSCC() string {
	return c.originalSSCC
}

// OriginalLUID returns the unit identifier for the original bundle.
func (c SplitBundleCommand) OriginalLUID() string {
	return c.originalLUID
}

// NewSSCC returns the pallet identifier for the new sibling.
func (c SplitBundleCommand) NewSSCC() string {
	return c.newSSCC
}

// NewLUID returns the unit identifier for the new sibling.
func (c SplitBundleCommand) NewLUID() string {
	return c.newLUID
}

func (c *SplitBundleCommand) setBundleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bundleID = id
	return nil
}

func (c *SplitBundleCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *SplitBundleCommand) setSheets(sheets int) error {
	if sheets < 1 {
		return errs.NewValueIsInvalidErrorWithCause("sheets",
			fmt.Errorf("%d is not greater than 0", sheets))
	}
	c.sheets = sheets
	return nil
}

func (c *SplitBundleCommand) setIdentifiers(originalSSCC, originalLUID, newSSCC, newLUID string) error {
	if originalSSCC == "" || newSSCC == "" {
		return errs.NewValueIsRequiredError("sscc")
	}
	if originalLUID == "" || newLUID == "" {
		return errs.NewValueIsRequiredError("luid")
	}
	c.originalSSCC = originalSSCC
	c.originalLUID = originalLUID
	c.newSSCC = newSSCC
	c.newLUID = newLUID
	return nil
}
