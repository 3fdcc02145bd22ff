package commands_test

import (
	"context"
	"io"
	"log/slog"

	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/cutorder"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/model/location"
	"bundletrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockBundleRepository struct{ mock.Mock }

func (m *MockBundleRepository) Add(ctx context.Context, b *bundle.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBundleRepository) Update(ctx context.Context, b *bundle.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBundleRepository) Get(ctx context.Context, id kernel.UUID) (*bundle.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bundle.Bundle), args.Error(1)
}

func (m *MockBundleRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*bundle.Bundle, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bundle.Bundle), args.Error(1)
}

type MockCutOrderRepository struct{ mock.Mock }

func (m *MockCutOrderRepository) Add(ctx context.Context, o *cutorder.CutOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockCutOrderRepository) Update(ctx context.Context, o *cutorder.CutOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockCutOrderRepository) Get(ctx context.Context, id kernel.UUID) (*cutorder.CutOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cutorder.CutOrder), args.Error(1)
}

func (m *MockCutOrderRepository) GetAllActive(ctx context.Context) ([]*cutorder.CutOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cutorder.CutOrder), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationRepository) Ensure(ctx context.Context, codes []string) (map[string]kernel.UUID, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]kernel.UUID), args.Error(1)
}

// MockUoW satisfies every unit of work composite the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) BundleRepository() ports.BundleRepository {
	args := m.Called()
	return args.Get(0).(ports.BundleRepository)
}

func (m *MockUoW) CutOrderRepository() ports.CutOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.CutOrderRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBundleUoWFactory struct{ mock.Mock }

func (m *MockBundleUoWFactory) Create() commands.BundleUoW {
	args := m.Called()
	return args.Get(0).(commands.BundleUoW)
}

type MockSplitUoWFactory struct{ mock.Mock }

func (m *MockSplitUoWFactory) Create() commands.SplitUoW {
	args := m.Called()
	return args.Get(0).(commands.SplitUoW)
}

type MockActivityUoWFactory struct{ mock.Mock }

func (m *MockActivityUoWFactory) Create() commands.ActivityUoW {
	args := m.Called()
	return args.Get(0).(commands.ActivityUoW)
}

type MockOrderActivityRefresher struct{ mock.Mock }

func (m *MockOrderActivityRefresher) Handle(ctx context.Context, cmd commands.RefreshOrderActivityCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
