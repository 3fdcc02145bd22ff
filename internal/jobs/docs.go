// Package jobs provides scheduled background tasks for the bundle tracking
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. OrderActivitySweepJob - Runs every minute to re-evaluate the activity
// flag of active cut orders whose post-action refresh was skipped or failed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep handler already logs and skips per-order refresh failures; only
// a sweep that cannot even list the active orders surfaces here, and it is
// logged rather than retried because the next tick runs a minute later.
package jobs
