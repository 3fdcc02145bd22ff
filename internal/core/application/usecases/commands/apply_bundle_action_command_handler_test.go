package commands_test

import (
	"errors"
	"testing"
	"time"

	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreBundleInStatus(t *testing.T, orderID kernel.UUID, status bundle.Status) *bundle.Bundle {
	t.Helper()

	value := 100
	loc := kernel.NewUUID()
	b, err := bundle.RestoreBundle(
		kernel.NewUUID(), orderID, bundle.NumberFromStored(&value),
		50, status, &loc, "S", "L", time.Now().UTC(), nil, 1,
	)
	require.NoError(t, err)
	return b
}

func TestApplyBundleActionCommandHandler_Handle_UseSuccess(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	first := restoreBundleInStatus(t, orderID, bundle.Assigned)
	second := restoreBundleInStatus(t, orderID, bundle.Assigned)

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{first.ID(), second.ID()}, bundle.ActionUse, "", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once(),
		bundleRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once(),
		bundleRepo.On("Update", mock.Anything, first).Return(nil).Once(),
		bundleRepo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		refresher.On("Handle", mock.Anything, mock.AnythingOfType("commands.RefreshOrderActivityCommand")).
			Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, bundle.Used, first.Status())
	assert.Equal(t, bundle.Used, second.Status())
	bundleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	refresher.AssertExpectations(t)
}

func TestApplyBundleActionCommandHandler_Handle_UseRejectsWholeBatch(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	assigned := restoreBundleInStatus(t, orderID, bundle.Assigned)
	available := restoreBundleInStatus(t, orderID, bundle.Available)

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{assigned.ID(), available.ID()}, bundle.ActionUse, "", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, assigned.ID()).Return(assigned, nil).Once(),
		bundleRepo.On("Get", mock.Anything, available.ID()).Return(available, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	// The valid member of the batch stays untouched.
	assert.Equal(t, bundle.Assigned, assigned.Status())
	bundleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	refresher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestApplyBundleActionCommandHandler_Handle_MoveResolvesDestination(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	target := restoreBundleInStatus(t, orderID, bundle.Assigned)
	destinationID := kernel.NewUUID()

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{target.ID()}, bundle.ActionMove, "B7", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	locationRepo := new(MockLocationRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("LocationRepository").Return(locationRepo).Once(),
		locationRepo.On("Ensure", mock.Anything, []string{"B7"}).
			Return(map[string]kernel.UUID{"B7": destinationID}, nil).Once(),
		bundleRepo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		refresher.On("Handle", mock.Anything, mock.AnythingOfType("commands.RefreshOrderActivityCommand")).
			Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, target.LocationID().IsEqual(destinationID))
	// Moving never changes status or the derived work order.
	assert.Equal(t, bundle.Assigned, target.Status())
	uow.AssertExpectations(t)
	locationRepo.AssertExpectations(t)
}

func TestApplyBundleActionCommandHandler_Handle_RefreshFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	target := restoreBundleInStatus(t, orderID, bundle.Assigned)

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{target.ID()}, bundle.ActionUse, "", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		bundleRepo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		refresher.On("Handle", mock.Anything, mock.AnythingOfType("commands.RefreshOrderActivityCommand")).
			Return(errors.New("refresh error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	refresher.AssertExpectations(t)
}

func TestApplyBundleActionCommandHandler_Handle_RefreshesEachOrderOnce(t *testing.T) {
	ctx := t.Context()
	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()
	first := restoreBundleInStatus(t, orderA, bundle.Assigned)
	second := restoreBundleInStatus(t, orderA, bundle.Assigned)
	third := restoreBundleInStatus(t, orderB, bundle.Assigned)

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{first.ID(), second.ID(), third.ID()}, bundle.ActionUse, "", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BundleRepository").Return(bundleRepo).Once()
	bundleRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	bundleRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	bundleRepo.On("Get", mock.Anything, third.ID()).Return(third, nil).Once()
	bundleRepo.On("Update", mock.Anything, mock.AnythingOfType("*bundle.Bundle")).Return(nil).Times(3)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	refresher.On("Handle", mock.Anything, mock.AnythingOfType("commands.RefreshOrderActivityCommand")).
		Return(nil).Twice()

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	refresher.AssertExpectations(t)
}

func TestApplyBundleActionCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	target := restoreBundleInStatus(t, kernel.NewUUID(), bundle.Assigned)

	cmd, err := commands.NewApplyBundleActionCommand(
		[]kernel.UUID{target.ID()}, bundle.ActionUse, "", "")
	require.NoError(t, err)

	bundleRepo := new(MockBundleRepository)
	uow := new(MockUoW)
	refresher := new(MockOrderActivityRefresher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("Get", mock.Anything, target.ID()).Return(nil, errors.New("get error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBundleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyBundleActionCommandHandler(factory, refresher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}
