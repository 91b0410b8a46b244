// Package dispatch runs a batch of jobs with bounded concurrency.
//
// It backs Dashboard.PushAll. With a concurrency of one the jobs run in
// order on the caller's goroutine; above one they are fanned out over a
// fixed pool of workers. Either way every job gets an [Outcome] at the same
// index, and a panicking job is recovered and reported with a correlation
// ID instead of taking the process down.
package dispatch
