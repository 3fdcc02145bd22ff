package commands

import (
	"context"
	"log/slog"

	"bundletrack/internal/core/domain/model/cutorder"
)

// SweepOrderActivityCommandHandler walks every still-active cut order and
// re-derives its activity flag. Each order is refreshed in its own
// transaction through the refresher; one failing order is logged and does
// not stop the sweep.
type SweepOrderActivityCommandHandler struct {
	uowFactory ActivityUoWFactory
	refresher  OrderActivityRefresher
	logger     *slog.Logger
}

// NewSweepOrderActivityCommandHandler creates a handler for activity sweeps.
func NewSweepOrderActivityCommandHandler(
	uowFactory ActivityUoWFactory,
	refresher OrderActivityRefresher,
	logger *slog.Logger,
) SweepOrderActivityCommandHandler {
	return SweepOrderActivityCommandHandler{
		uowFactory: uowFactory,
		refresher:  refresher,
		logger:     logger.With("component", "order_activity_sweep"),
	}
}

// Handle runs one sweep over all active orders.
func (h *SweepOrderActivityCommandHandler) Handle(ctx context.Context, cmd SweepOrderActivityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.listActiveOrders(ctx)
	if err != nil {
		return err
	}

	for _, order := range orders {
		refreshCmd, cmdErr := NewRefreshOrderActivityCommand(order.ID())
		if cmdErr != nil {
			h.logger.ErrorContext(ctx, "sweep skipped order", "orderId", order.ID().String(), "error", cmdErr)
			continue
		}
		if refreshErr := h.refresher.Handle(ctx, refreshCmd); refreshErr != nil {
			h.logger.ErrorContext(ctx, "sweep failed for order", "orderId", order.ID().String(), "error", refreshErr)
		}
	}

	return nil
}

// listActiveOrders loads the sweep's working set in a short read-only
// transaction.
func (h *SweepOrderActivityCommandHandler) listActiveOrders(ctx context.Context) ([]*cutorder.CutOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.CutOrderRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orders, nil
}
