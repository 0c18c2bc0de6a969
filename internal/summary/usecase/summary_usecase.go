package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"meetnotes-backend/internal/summary/domain"
	"meetnotes-backend/internal/summary/dto"
	"meetnotes-backend/internal/summary/repository"
	"meetnotes-backend/pkg/llm"
	"meetnotes-backend/pkg/mailer"
)

// recentShareLimit caps how many shares are attached to a single-summary fetch
const recentShareLimit = 10

// summaryUsecase implements SummaryUsecase
type summaryUsecase struct {
	summaryRepo repository.SummaryRepository
	shareRepo   repository.ShareRepository
	summarizer  llm.Summarizer
	sender      mailer.Sender
}

// NewSummaryUsecase creates a new instance of summaryUsecase
func NewSummaryUsecase(summaryRepo repository.SummaryRepository, shareRepo repository.ShareRepository, summarizer llm.Summarizer, sender mailer.Sender) SummaryUsecase {
	return &summaryUsecase{
		summaryRepo: summaryRepo,
		shareRepo:   shareRepo,
		summarizer:  summarizer,
		sender:      sender,
	}
}

func (u *summaryUsecase) Generate(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
	// The pending row is written before the LLM call so a crash mid-call
	// still leaves an auditable record.
	summary := &domain.Summary{
		Transcript: transcript,
		Prompt:     prompt,
		Model:      model,
		AISummary:  "",
		Status:     domain.StatusPending,
	}
	if err := u.summaryRepo.Create(summary); err != nil {
		return nil, fmt.Errorf("failed to create summary: %w", err)
	}

	result, err := u.summarizer.SummarizeTranscript(ctx, transcript, prompt, model)
	if err != nil {
		if markErr := u.summaryRepo.MarkFailed(summary.ID); markErr != nil {
			slog.Error("failed to mark summary as failed", "summary_id", summary.ID, "error", markErr)
		}
		slog.Error("llm call failed", "summary_id", summary.ID, "model", model, "error", err)
		return nil, &domain.GenerationError{SummaryID: summary.ID, Err: err}
	}

	updated, err := u.summaryRepo.MarkCompleted(summary.ID, result.Summary, result.TokensIn, result.TokensOut)
	if err != nil {
		return nil, fmt.Errorf("failed to record generation result: %w", err)
	}

	slog.Info("summary generated",
		"summary_id", updated.ID,
		"model", result.Model,
		"tokens_in", result.TokensIn,
		"tokens_out", result.TokensOut)

	return &dto.GenerateSummaryResponse{
		ID:        updated.ID,
		AISummary: updated.AISummary,
		TokensIn:  result.TokensIn,
		TokensOut: result.TokensOut,
		Model:     updated.Model,
	}, nil
}

func (u *summaryUsecase) GetByID(ctx context.Context, id string) (*domain.Summary, error) {
	summary, err := u.summaryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrSummaryNotFound
	}

	shares, err := u.shareRepo.FindBySummaryID(id, recentShareLimit)
	if err != nil {
		return nil, err
	}
	summary.Shares = shares

	return summary, nil
}

func (u *summaryUsecase) List(ctx context.Context, page, limit int, userID string) (*dto.ListSummariesResponse, error) {
	offset := (page - 1) * limit

	items, total, err := u.summaryRepo.List(userID, limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.ListSummariesResponse{
		Summaries: items,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

func (u *summaryUsecase) Update(ctx context.Context, id, editedSummary string) (*dto.UpdateSummaryResponse, error) {
	existing, err := u.summaryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrSummaryNotFound
	}

	updated, err := u.summaryRepo.UpdateEditedSummary(id, editedSummary)
	if err != nil {
		return nil, err
	}

	slog.Info("summary updated", "summary_id", id)

	return &dto.UpdateSummaryResponse{
		ID:            updated.ID,
		EditedSummary: updated.EditedSummary,
		UpdatedAt:     updated.UpdatedAt,
	}, nil
}

func (u *summaryUsecase) Share(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error) {
	summary, err := u.summaryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrSummaryNotFound
	}

	// The user edit takes precedence over the raw model output.
	content := summary.DisplayContent()
	if subject == "" {
		subject = fmt.Sprintf("Meeting Summary - %s", time.Now().Format("1/2/2006"))
	}

	result, err := u.sender.SendSummary(ctx, recipients, subject, content, id)
	if err != nil {
		slog.Error("email delivery failed", "summary_id", id, "recipients", len(recipients), "error", err)
		return nil, &domain.DeliveryError{SummaryID: id, Err: err}
	}

	share := &domain.Share{
		SummaryID:  id,
		Recipients: recipients,
		Subject:    subject,
		BodyHTML:   result.BodyHTML,
	}
	if err := u.shareRepo.Create(share); err != nil {
		return nil, fmt.Errorf("failed to record share: %w", err)
	}

	slog.Info("summary shared",
		"share_id", share.ID,
		"summary_id", id,
		"recipients", len(recipients),
		"message_id", result.MessageID)

	return &dto.ShareSummaryResponse{
		Success:    true,
		ShareID:    share.ID,
		Recipients: recipients,
		Subject:    subject,
		MessageID:  result.MessageID,
	}, nil
}

func (u *summaryUsecase) Delete(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error) {
	summary, err := u.summaryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrSummaryNotFound
	}

	shareCount, err := u.shareRepo.CountBySummaryID(id)
	if err != nil {
		return nil, err
	}

	if err := u.summaryRepo.DeleteWithShares(id); err != nil {
		return nil, err
	}

	slog.Info("summary deleted", "summary_id", id, "shares_deleted", shareCount)

	return &dto.DeleteSummaryResponse{
		Success:   true,
		Message:   "Summary deleted successfully",
		DeletedID: id,
	}, nil
}
