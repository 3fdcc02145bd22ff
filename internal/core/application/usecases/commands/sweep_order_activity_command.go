package commands

import (
	"errors"

	"bundletrack/internal/pkg/guard"
)

var ErrSweepOrderActivityCommandIsNotConstructed = errors.New(
	"SweepOrderActivityCommand must be created via NewSweepOrderActivityCommand constructor",
)

// SweepOrderActivityCommand triggers re-derivation of the activity flag of
// every still-active cut order. The sweep is the safety net behind the
// best-effort post-action refresh: a refresh that failed or was skipped
// leaves a stale flag that the next sweep repairs.
type SweepOrderActivityCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOrderActivityCommand creates a parameterless sweep command.
func NewSweepOrderActivityCommand() SweepOrderActivityCommand {
	return SweepOrderActivityCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepOrderActivityCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrderActivityCommandIsNotConstructed)
}
