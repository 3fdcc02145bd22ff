package cmd

import (
	"log/slog"

	"bundletrack/internal/adapters/out/postgres"
	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/application/usecases/queries"
	"bundletrack/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateCutOrderCommandHandler() commands.CreateCutOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCutOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyBundleActionCommandHandler() commands.ApplyBundleActionCommandHandler {
	var f commands.BundleUoWFactory = FuncBundleUoWFactory(func() commands.BundleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyBundleActionCommandHandler(f, c.CreateRefreshOrderActivityCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateSplitBundleCommandHandler() commands.SplitBundleCommandHandler {
	var f commands.SplitUoWFactory = FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitBundleCommandHandler(f, c.CreateRefreshOrderActivityCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateRefreshOrderActivityCommandHandler() commands.RefreshOrderActivityCommandHandler {
	var f commands.ActivityUoWFactory = FuncActivityUoWFactory(func() commands.ActivityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshOrderActivityCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepOrderActivityCommandHandler() commands.SweepOrderActivityCommandHandler {
	var f commands.ActivityUoWFactory = FuncActivityUoWFactory(func() commands.ActivityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepOrderActivityCommandHandler(f, c.CreateRefreshOrderActivityCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetCutOrderQueryHandler() queries.GetCutOrderQueryHandler {
	return queries.NewGetCutOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLocationsQueryHandler() queries.ListLocationsQueryHandler {
	return queries.NewListLocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepOrderActivityCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBundleUoWFactory func() commands.BundleUoW

func (f FuncBundleUoWFactory) Create() commands.BundleUoW {
	return f()
}

type FuncSplitUoWFactory func() commands.SplitUoW

func (f FuncSplitUoWFactory) Create() commands.SplitUoW {
	return f()
}

type FuncActivityUoWFactory func() commands.ActivityUoW

func (f FuncActivityUoWFactory) Create() commands.ActivityUoW {
	return f()
}
