package dto

import (
	"time"

	"meetnotes-backend/internal/summary/domain"
)

// DefaultModel is the model used when a generate request omits one.
const DefaultModel = "llama3-70b-8192"

// DefaultPrompt is used when a multipart generate request omits the prompt field.
const DefaultPrompt = "Please provide a comprehensive summary of this meeting transcript."

// MaxTranscriptFileSize limits uploaded transcript files to 10 MiB.
const MaxTranscriptFileSize = 10 * 1024 * 1024

type GenerateSummaryRequest struct {
	Transcript string `json:"transcript" binding:"required,min=10"`
	Prompt     string `json:"prompt" binding:"required,min=5"`
	Model      string `json:"model"`
}

type GenerateSummaryResponse struct {
	ID        string `json:"id"`
	AISummary string `json:"aiSummary"`
	TokensIn  int    `json:"tokensIn"`
	TokensOut int    `json:"tokensOut"`
	Model     string `json:"model"`
}

type UpdateSummaryRequest struct {
	EditedSummary string `json:"editedSummary" binding:"required,min=1"`
}

type UpdateSummaryResponse struct {
	ID            string    `json:"id"`
	EditedSummary *string   `json:"editedSummary"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ShareSummaryRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject    string   `json:"subject"`
}

type ShareSummaryResponse struct {
	Success    bool     `json:"success"`
	ShareID    string   `json:"shareId"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	MessageID  string   `json:"messageId,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ListSummariesResponse struct {
	Summaries  []*domain.SummaryListItem `json:"summaries"`
	Pagination Pagination                `json:"pagination"`
}

type DeleteSummaryResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}
