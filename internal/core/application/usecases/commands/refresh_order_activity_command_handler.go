package commands

import (
	"context"

	"bundletrack/internal/core/domain/model/bundle"
)

// RefreshOrderActivityCommandHandler re-derives a cut order's activity flag
// in its own transaction, separate from whatever action triggered it. The
// flag only ever flips from active to inactive here; reactivation is an
// explicit external operation.
type RefreshOrderActivityCommandHandler struct {
	uowFactory ActivityUoWFactory
}

// NewRefreshOrderActivityCommandHandler creates a handler for activity
// refreshes.
func NewRefreshOrderActivityCommandHandler(uowFactory ActivityUoWFactory) RefreshOrderActivityCommandHandler {
	return RefreshOrderActivityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle re-derives the activity flag. The order is persisted only when the
// flag actually changed.
func (h RefreshOrderActivityCommandHandler) Handle(ctx context.Context, cmd RefreshOrderActivityCommand) error {
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

	order, err := uow.CutOrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !order.Active() {
		return uow.Commit(ctx)
	}

	bundles, err := uow.BundleRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	statuses := make([]bundle.Status, 0, len(bundles))
	for _, b := range bundles {
		statuses = append(statuses, b.Status())
	}

	if order.RefreshActive(statuses) {
		if err = uow.CutOrderRepository().Update(ctx, order); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
