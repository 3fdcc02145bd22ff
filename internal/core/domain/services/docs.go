// Package services contains stateless domain services that coordinate
// multiple aggregates: the split algorithm over a loaded sibling group and
// the display-name disambiguation projection. Both are free of I/O; loading
// state and making the result durable is the use case layer's job.
package services
