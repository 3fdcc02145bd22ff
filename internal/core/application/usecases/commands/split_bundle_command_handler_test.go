package commands_test

import (
	"testing"
	"time"

	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSplittableBundle(t *testing.T, orderID kernel.UUID, number, sheets int) *bundle.Bundle {
	t.Helper()

	n, err := bundle.NewNumber(number)
	require.NoError(t, err)

	b, err := bundle.NewBundle(kernel.NewUUID(), orderID, n, sheets, kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)
	return b
}

func TestSplitBundleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	original := newSplittableBundle(t, orderID, 100, 100)
	other := newSplittableBundle(t, orderID, 50, 50)

	cmd, err := commands.NewSplitBundleCommand(
		original.ID(), orderID, 40, "SSCC-A", "LUID-A", "SSCC-B", "LUID-B")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, original.ID()).Return(original, nil).Once(),
		bundleRepo.On("GetByOrder", mock.Anything, orderID).
			Return([]*bundle.Bundle{original, other}, nil).Once(),
		bundleRepo.On("Update", mock.Anything, original).Return(nil).Once(),
		bundleRepo.On("Add", mock.Anything, mock.AnythingOfType("*bundle.Bundle")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		refresher.On("Handle", mock.Anything, mock.AnythingOfType("commands.RefreshOrderActivityCommand")).
			Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSplitBundleCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)

	assert.Equal(t, 60, original.Sheets())
	assert.Equal(t, 1, original.Number().Variant())
	assert.True(t, original.Number().IsEncoded())
	assert.Equal(t, "SSCC-A", original.SSCC())
	require.Len(t, original.History(), 2)
	assert.Equal(t, bundle.ActionSplit, original.History()[1].Action())

	var sibling *bundle.Bundle
	for _, call := range bundleRepo.Calls {
		if call.Method == "Add" {
			sibling = call.Arguments.Get(1).(*bundle.Bundle)
		}
	}
	require.NotNil(t, sibling)
	assert.Equal(t, 40, sibling.Sheets())
	assert.Equal(t, 2, sibling.Number().Variant())
	assert.True(t, sibling.OrderID().IsEqual(orderID))
	assert.Equal(t, "SSCC-B", sibling.SSCC())
	require.Len(t, sibling.History(), 1)
	assert.Equal(t, bundle.ActionSplit, sibling.History()[0].Action())

	bundleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	refresher.AssertExpectations(t)
}

func TestSplitBundleCommandHandler_Handle_WrongOrder(t *testing.T) {
	ctx := t.Context()
	original := newSplittableBundle(t, kernel.NewUUID(), 100, 100)
	otherOrderID := kernel.NewUUID()

	cmd, err := commands.NewSplitBundleCommand(
		original.ID(), otherOrderID, 40, "SA", "LA", "SB", "LB")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, original.ID()).Return(original, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSplitBundleCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to order")
	assert.Equal(t, 100, original.Sheets())
	uow.AssertExpectations(t)
}

func TestSplitBundleCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	original := newSplittableBundle(t, orderID, 100, 100)
	conflict := errs.NewVersionConflictError("bundle", original.ID().String())

	cmd, err := commands.NewSplitBundleCommand(
		original.ID(), orderID, 40, "SA", "LA", "SB", "LB")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, original.ID()).Return(original, nil).Once(),
		bundleRepo.On("GetByOrder", mock.Anything, orderID).
			Return([]*bundle.Bundle{original}, nil).Once(),
		bundleRepo.On("Update", mock.Anything, original).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSplitBundleCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var conflictErr *errs.VersionConflictError
	assert.ErrorAs(t, err, &conflictErr)
	// Commit is never reached, so the sibling row rolls back with the rest.
	bundleRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	refresher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestSplitBundleCommandHandler_Handle_SheetBoundsError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	original := newSplittableBundle(t, orderID, 100, 40)

	// Requesting every sheet the bundle holds leaves nothing behind.
	cmd, err := commands.NewSplitBundleCommand(
		original.ID(), orderID, 40, "SA", "LA", "SB", "LB")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, original.ID()).Return(original, nil).Once(),
		bundleRepo.On("GetByOrder", mock.Anything, orderID).
			Return([]*bundle.Bundle{original}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSplitBundleCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, 40, original.Sheets())
	uow.AssertExpectations(t)
}
