package bundle

import (
	"fmt"

	"bundletrack/internal/pkg/errs"
)

// Action identifies one of the four operations that can be applied to a
// bundle. Every applied action produces exactly one history entry per
// affected bundle.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionMove relocates a bundle to a destination site.
	ActionMove

	// ActionAssign commits a bundle to a work order.
	ActionAssign

	// ActionUse consumes a bundle's material.
	ActionUse

	// ActionSplit divides a bundle into two siblings.
	ActionSplit
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown: "unknown",
		ActionMove:    "move",
		ActionAssign:  "assign",
		ActionUse:     "use",
		ActionSplit:   "split",
	}
}

func getValidActionStrings() map[Action]string {
	//nolint:exhaustive // ActionUnknown is intentionally excluded as it's invalid
	return map[Action]string{
		ActionMove:   "move",
		ActionAssign: "assign",
		ActionUse:    "use",
		ActionSplit:  "split",
	}
}

// ActionFromString parses an action name as carried by persistence and
// transport. Unrecognized names return an error.
func ActionFromString(s string) (Action, error) {
	for action, name := range getValidActionStrings() {
		if name == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid action", s))
}

// Validate checks that the Action is one of move, assign, use, split.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the wire name of the action. Invalid values render as
// "unknown".
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}
