package ingestion

import "errors"

var (
	// ErrFeedbackRepositoryRequired is returned when a feedback repository is not provided.
	ErrFeedbackRepositoryRequired = errors.New("feedback repository required")

	// ErrPipelineReleased is returned when submitting to a released pipeline.
	ErrPipelineReleased = errors.New("pipeline released")
)
