package usecase

import (
	"context"

	"meetnotes-backend/internal/summary/domain"
	"meetnotes-backend/internal/summary/dto"
)

// SummaryUsecase defines the summary lifecycle operations
type SummaryUsecase interface {
	// Generate creates a pending summary row, invokes the LLM, and records
	// the outcome. A collaborator failure marks the row failed and returns
	// a *domain.GenerationError. Single attempt, no retries.
	Generate(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error)
	// GetByID fetches one summary including its most recent shares
	GetByID(ctx context.Context, id string) (*domain.Summary, error)
	// List fetches a page of summaries, newest first, optionally filtered by user
	List(ctx context.Context, page, limit int, userID string) (*dto.ListSummariesResponse, error)
	// Update overwrites the user-edited summary text
	Update(ctx context.Context, id, editedSummary string) (*dto.UpdateSummaryResponse, error)
	// Share emails the summary content and records the distribution
	Share(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error)
	// Delete removes a summary and all of its shares
	Delete(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error)
}
