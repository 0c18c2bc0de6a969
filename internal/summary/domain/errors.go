package domain

import (
	"errors"
	"fmt"
)

// ErrSummaryNotFound is returned when a referenced summary does not exist.
var ErrSummaryNotFound = errors.New("summary not found")

// GenerationError wraps a failure of the LLM collaborator. The summary row
// has already been marked failed when this surfaces.
type GenerationError struct {
	SummaryID string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("summary generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// DeliveryError wraps a failure of the email collaborator. No share row is
// written when this surfaces.
type DeliveryError struct {
	SummaryID string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
