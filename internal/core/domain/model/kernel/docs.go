// Package kernel contains shared value objects used across the domain model.
// These are small immutable types with validated constructors; the zero value
// of each type is invalid and is rejected by Validate.
package kernel
