// Package ingestion provides pipeline orchestration for recording feedback events.
//
// The Pipeline type accepts batches of feedback events, validates them
// synchronously, and writes them to storage through a worker pool. It exists
// for bulk imports where callers want to keep submitting while earlier
// batches are still being written.
//
// Errors during async writes are logged and counted but do not fail the
// submitting call; Drain reports how many batches failed.
package ingestion
