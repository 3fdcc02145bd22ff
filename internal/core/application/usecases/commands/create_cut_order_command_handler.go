package commands

import (
	"context"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/cutorder"
	"bundletrack/internal/core/domain/model/kernel"
)

// CreateCutOrderCommandHandler handles cut order registration. The order,
// the starting location, and every initial bundle with its synthetic move
// history entry are persisted in a single transaction.
type CreateCutOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateCutOrderCommandHandler creates a handler for cut order creation.
func NewCreateCutOrderCommandHandler(uowFactory OrderUoWFactory) CreateCutOrderCommandHandler {
	return CreateCutOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cut order creation command. The starting location is
// resolved get-or-create, so orders can be cut at sites the system has not
// seen before.
func (h *CreateCutOrderCommandHandler) Handle(ctx context.Context, cmd CreateCutOrderCommand) error {
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

	locations, err := uow.LocationRepository().Ensure(ctx, []string{cmd.LocationCode()})
	if err != nil {
		return err
	}
	locationID := locations[cmd.LocationCode()]

	order, err := cutorder.NewCutOrder(cmd.OrderID(), cmd.Code(), cmd.Date(), cmd.DeclaredBundleCount())
	if err != nil {
		return err
	}

	if err = uow.CutOrderRepository().Add(ctx, order); err != nil {
		return err
	}

	bundleRepo := uow.BundleRepository()
	now := time.Now().UTC()

	for _, spec := range cmd.Bundles() {
		number, numErr := bundle.NewNumber(spec.Number)
		if numErr != nil {
			return numErr
		}

		b, bundleErr := bundle.NewBundle(kernel.NewUUID(), cmd.OrderID(), number, spec.Sheets, locationID, now)
		if bundleErr != nil {
			return bundleErr
		}

		if err = bundleRepo.Add(ctx, b); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
