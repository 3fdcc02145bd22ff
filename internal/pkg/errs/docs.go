// Package errs provides the standardized error types used across the
// application. Each error kind follows the same pattern: a sentinel root
// error, a struct carrying details, constructors with and without an
// underlying cause, and Error/Unwrap methods so errors.Is classification
// works against the sentinel.
//
// Error kinds map onto the action-handling taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     caller-fixable validation failures, surfaced before any mutation.
//   - ObjectNotFoundError: a lookup by identifier found nothing.
//   - VersionConflictError: a conditional update lost a race with a
//     concurrent writer; retryable after reloading state.
package errs
