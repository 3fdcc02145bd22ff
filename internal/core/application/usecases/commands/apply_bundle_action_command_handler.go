package commands

import (
	"context"
	"log/slog"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
)

// ApplyBundleActionCommandHandler applies a direct action to a batch of
// bundles. The whole batch is validated before any bundle is mutated and
// persisted in one transaction, so a failing precondition on one target
// leaves every target untouched.
//
// After the transaction commits, the activity flag of every distinct owning
// order is re-derived best-effort: a refresh failure is logged and swallowed,
// never surfaced as the action's failure.
type ApplyBundleActionCommandHandler struct {
	uowFactory BundleUoWFactory
	refresher  OrderActivityRefresher
	logger     *slog.Logger
}

// NewApplyBundleActionCommandHandler creates a handler for batch bundle
// actions.
func NewApplyBundleActionCommandHandler(
	uowFactory BundleUoWFactory,
	refresher OrderActivityRefresher,
	logger *slog.Logger,
) ApplyBundleActionCommandHandler {
	return ApplyBundleActionCommandHandler{
		uowFactory: uowFactory,
		refresher:  refresher,
		logger:     logger.With("component", "apply_bundle_action"),
	}
}

// Handle processes the batch action. All targets share one timestamp so the
// batch reads as a single event in each bundle's ledger.
func (h *ApplyBundleActionCommandHandler) Handle(ctx context.Context, cmd ApplyBundleActionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bundleRepo := uow.BundleRepository()

	bundles := make([]*bundle.Bundle, 0, len(cmd.BundleIDs()))
	for _, id := range cmd.BundleIDs() {
		b, err := bundleRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		bundles = append(bundles, b)
	}

	// Whole-batch precondition check before any mutation.
	for _, b := range bundles {
		var err error
		switch cmd.Action() {
		case bundle.ActionAssign:
			err = b.Status().ValidateAssign()
		case bundle.ActionUse:
			err = b.ValidateUse()
		}
		if err != nil {
			return err
		}
	}

	var destinationID kernel.UUID
	if cmd.Action() == bundle.ActionMove {
		locations, err := uow.LocationRepository().Ensure(ctx, []string{cmd.DestinationCode()})
		if err != nil {
			return err
		}
		destinationID = locations[cmd.DestinationCode()]
	}

	now := time.Now().UTC()
	for _, b := range bundles {
		var err error
		switch cmd.Action() {
		case bundle.ActionMove:
			err = b.Move(destinationID, now)
		case bundle.ActionAssign:
			err = b.Assign(cmd.WorkOrderNumber(), now)
		case bundle.ActionUse:
			err = b.Use(now)
		}
		if err != nil {
			return err
		}

		if err = bundleRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.refreshOwningOrders(ctx, bundles)
	return nil
}

// refreshOwningOrders re-derives the activity flag of every distinct order
// touched by the batch. Best-effort: a failed refresh leaves a stale flag
// that the periodic sweep will repair.
func (h *ApplyBundleActionCommandHandler) refreshOwningOrders(ctx context.Context, bundles []*bundle.Bundle) {
	seen := make(map[kernel.UUID]struct{})
	for _, b := range bundles {
		orderID := b.OrderID()
		if _, ok := seen[orderID]; ok {
			continue
		}
		seen[orderID] = struct{}{}

		cmd, err := NewRefreshOrderActivityCommand(orderID)
		if err != nil {
			h.logger.ErrorContext(ctx, "order activity refresh skipped", "orderId", orderID.String(), "error", err)
			continue
		}
		if err = h.refresher.Handle(ctx, cmd); err != nil {
			h.logger.ErrorContext(ctx, "order activity refresh failed", "orderId", orderID.String(), "error", err)
		}
	}
}
