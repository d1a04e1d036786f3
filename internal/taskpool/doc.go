// Package taskpool provides the bounded worker pool behind the
// non-blocking operation surface.
//
// The pool bounds how many operations run at once. Admission is the
// only point that honors the caller's context: once a task is
// dispatched it always runs to completion and the submitting goroutine
// blocks until it finishes. There is no cancellation, no ordering
// guarantee between concurrent submissions, and no progress reporting.
package taskpool
