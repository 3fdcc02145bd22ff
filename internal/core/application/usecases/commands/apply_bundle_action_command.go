package commands

import (
	"errors"
	"fmt"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"
	"bundletrack/internal/pkg/guard"
)

var ErrApplyBundleActionCommandIsNotConstructed = errors.New(
	"ApplyBundleActionCommand must be created via NewApplyBundleActionCommand constructor",
)

// ApplyBundleActionCommand represents a request to apply one of the direct
// actions (move, assign, use) to a batch of bundles. Splitting has its own
// command because it creates a new aggregate.
//
// Re-invoking move or assign with identical inputs appends a fresh history
// entry each time; callers that need retry idempotency must dedupe at the
// transport boundary.
type ApplyBundleActionCommand struct { //nolint:recvcheck //using for validation
	bundleIDs       []kernel.UUID
	action          bundle.Action
	destinationCode string
	workOrderNumber string

	guard guard.ConstructorGuard
}

// NewApplyBundleActionCommand creates a batch action command. The target
// list must be non-empty; duplicates are collapsed so a repeated id cannot
// double-apply the action. Move requires a destination site code, assign a
// non-empty work order number.
func NewApplyBundleActionCommand(
	bundleIDs []kernel.UUID,
	action bundle.Action,
	destinationCode string,
	workOrderNumber string,
) (ApplyBundleActionCommand, error) {
	cmd := ApplyBundleActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBundleIDs(bundleIDs),
		cmd.setAction(action),
		cmd.setDestinationCode(action, destinationCode),
		cmd.setWorkOrderNumber(action, workOrderNumber),
	); err != nil {
		return ApplyBundleActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyBundleActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyBundleActionCommandIsNotConstructed)
}

// BundleIDs returns the deduplicated target list in input order.
func (c ApplyBundleActionCommand) BundleIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.bundleIDs...)
}

// Action returns the action to apply.
func (c ApplyBundleActionCommand) Action() bundle.Action {
	return c.action
}

// DestinationCode returns the destination site code for move actions.
func (c ApplyBundleActionCommand) DestinationCode() string {
	return c.destinationCode
}

// WorkOrderNumber returns the work order for assign actions.
func (c ApplyBundleActionCommand) WorkOrderNumber() string {
	return c.workOrderNumber
}

func (c *ApplyBundleActionCommand) setBundleIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("bundleIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		c.bundleIDs = append(c.bundleIDs, id)
	}
	return nil
}

func (c *ApplyBundleActionCommand) setAction(action bundle.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	if action == bundle.ActionSplit {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("split requires the split command"))
	}
	c.action = action
	return nil
}

func (c *ApplyBundleActionCommand) setDestinationCode(action bundle.Action, code string) error {
	if action == bundle.ActionMove && code == "" {
		return errs.NewValueIsRequiredError("destinationCode")
	}
	c.destinationCode = code
	return nil
}

func (c *ApplyBundleActionCommand) setWorkOrderNumber(action bundle.Action, workOrder string) error {
	if action == bundle.ActionAssign && workOrder == "" {
		return errs.NewValueIsRequiredError("workOrderNumber")
	}
	c.workOrderNumber = workOrder
	return nil
}
