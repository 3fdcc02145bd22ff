package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/services"
	"bundletrack/internal/pkg/errs"
)

// SplitBundleCommandHandler orchestrates the split operation: load the
// bundle, verify its owning order, load the sibling group, run the split
// algorithm, and persist both sides in one transaction.
//
// The update of the original bundle is conditional on the version it was
// loaded with. Two concurrent splits of the same group both compute the next
// variant from their own reads; the one that commits second fails the
// version check, the transaction rolls back (so no sibling row survives
// either), and the caller sees a retryable version-conflict error. At most
// one split commits per sibling-group variant.
type SplitBundleCommandHandler struct {
	uowFactory SplitUoWFactory
	splitter   services.BundleSplitter
	refresher  OrderActivityRefresher
	logger     *slog.Logger
}

// NewSplitBundleCommandHandler creates a handler for split operations.
func NewSplitBundleCommandHandler(
	uowFactory SplitUoWFactory,
	refresher OrderActivityRefresher,
	logger *slog.Logger,
) SplitBundleCommandHandler {
	return SplitBundleCommandHandler{
		uowFactory: uowFactory,
		splitter:   services.NewBundleSplitter(),
		refresher:  refresher,
		logger:     logger.With("component", "split_bundle"),
	}
}

// Handle processes the split command. Both split history entries carry the
// same timestamp so the two sides of the split are recognizably one event.
func (h *SplitBundleCommandHandler) Handle(ctx context.Context, cmd SplitBundleCommand) error {
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

	original, err := bundleRepo.Get(ctx, cmd.BundleID())
	if err != nil {
		return err
	}

	if !original.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("bundle %s does not belong to order %s", cmd.BundleID(), cmd.OrderID()))
	}

	group, err := bundleRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	sibling, err := h.splitter.Split(original, group, services.SplitParams{
		NewBundleID:  kernel.NewUUID(),
		Sheets:       cmd.Sheets(),
		OriginalSSCC: cmd.OriginalSSCC(),
		OriginalLUID: cmd.OriginalLUID(),
		NewSSCC:      cmd.NewSSCC(),
		NewLUID:      cmd.NewLUID(),
		At:           time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err = bundleRepo.Update(ctx, original); err != nil {
		return err
	}

	if err = bundleRepo.Add(ctx, sibling); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.refreshOwningOrder(ctx, cmd.OrderID())
	return nil
}

// refreshOwningOrder re-derives the order's activity flag after the split.
// A split never changes bundle statuses, so this is a no-op in practice, but
// every committed action triggers the same best-effort recompute.
func (h *SplitBundleCommandHandler) refreshOwningOrder(ctx context.Context, orderID kernel.UUID) {
	cmd, err := NewRefreshOrderActivityCommand(orderID)
	if err != nil {
		h.logger.ErrorContext(ctx, "order activity refresh skipped", "orderId", orderID.String(), "error", err)
		return
	}
	if err = h.refresher.Handle(ctx, cmd); err != nil {
		h.logger.ErrorContext(ctx, "order activity refresh failed", "orderId", orderID.String(), "error", err)
	}
}
