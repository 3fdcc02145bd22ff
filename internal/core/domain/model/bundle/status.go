package bundle

import (
	"fmt"

	"bundletrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a bundle. It implements a state
// machine with defined transitions:
//
//	Available ──> Assigned ──> Used
//	                 │
//	                 └──┐
//	        (reassignment allowed)
//
// Used is terminal; no transition leaves it. Moving a bundle never changes
// its status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available is the initial status of a freshly cut bundle that has not
	// been committed to any work order.
	Available

	// Assigned indicates the bundle is committed to a work order.
	// Bundles can be reassigned while in this status.
	Assigned

	// Used indicates the bundle's material has been consumed.
	// This is a final state with no further transitions allowed.
	Used
)

// getStatusStrings returns the string representation of every Status value,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		Assigned:  "Assigned",
		Used:      "Used",
	}
}

// getValidStatusStrings returns only the valid Status values, used for
// validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "Available",
		Assigned:  "Assigned",
		Used:      "Used",
	}
}

// Validate checks that the Status is one of Available, Assigned, Used.
// Unknown (0) and any other values are rejected, which catches bad data
// coming from persistence or transport.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Safe to call on any
// value; invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAssign checks whether the status allows assignment without
// performing the transition. Available bundles can be assigned and Assigned
// bundles can be reassigned; Used is terminal.
func (s Status) ValidateAssign() error {
	if s != Available && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateUse checks whether the status allows consumption without
// performing the transition. Only Assigned bundles can be used; this is the
// per-bundle precondition behind the all-or-nothing batch rule.
func (s Status) ValidateUse() error {
	if s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to use", s.String()),
		)
	}
	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Available -> Assigned (initial assignment)
//   - Assigned -> Assigned (reassignment to a different work order)
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Use transitions the status to Used.
//
// Valid transitions:
//   - Assigned -> Used
//
// Used is a final state with no further transitions possible.
func (s Status) Use() (Status, error) {
	if err := s.ValidateUse(); err != nil {
		return 0, err
	}

	return Used, nil
}
