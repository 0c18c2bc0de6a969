package delivery

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"meetnotes-backend/internal/summary/domain"
	"meetnotes-backend/internal/summary/dto"
	"meetnotes-backend/internal/summary/usecase"

	"github.com/gin-gonic/gin"
)

// SummaryHandler handles the summary lifecycle HTTP endpoints
type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
	devMode        bool
}

// NewSummaryHandler creates a new SummaryHandler. devMode controls whether
// internal error detail is echoed to the caller.
func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase, devMode bool) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		devMode:        devMode,
	}
}

// Generate handles POST /api/summaries/generate. The transcript arrives
// either as a JSON body or as an uploaded plain-text file with prompt and
// model as form fields.
func (h *SummaryHandler) Generate(c *gin.Context) {
	var transcript, prompt, model string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fileHeader, err := c.FormFile("transcript")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": "transcript file is required"})
			return
		}
		if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "text/plain") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload", "details": "only plain text files are allowed"})
			return
		}
		if fileHeader.Size > dto.MaxTranscriptFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload", "details": "file size must be less than 10MB"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.handleError(c, err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			h.handleError(c, err)
			return
		}
		if !utf8.Valid(data) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload", "details": "file must be UTF-8 encoded text"})
			return
		}

		transcript = string(data)
		prompt = c.PostForm("prompt")
		if prompt == "" {
			prompt = dto.DefaultPrompt
		}
		model = c.PostForm("model")
	} else {
		var req dto.GenerateSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Warn("generate request validation failed", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}
		transcript = req.Transcript
		prompt = req.Prompt
		model = req.Model
	}

	if model == "" {
		model = dto.DefaultModel
	}

	slog.Info("starting summary generation",
		"transcript_length", len(transcript),
		"prompt_length", len(prompt),
		"model", model)

	resp, err := h.summaryUsecase.Generate(c.Request.Context(), transcript, prompt, model)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetByID handles GET /api/summaries/:id
func (h *SummaryHandler) GetByID(c *gin.Context) {
	summary, err := h.summaryUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// List handles GET /api/summaries?page=&limit=&userId=
func (h *SummaryHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	userID := c.Query("userId")

	resp, err := h.summaryUsecase.List(c.Request.Context(), page, limit, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /api/summaries/:id
func (h *SummaryHandler) Update(c *gin.Context) {
	var req dto.UpdateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update request validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	resp, err := h.summaryUsecase.Update(c.Request.Context(), c.Param("id"), req.EditedSummary)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Share handles POST /api/summaries/:id/share
func (h *SummaryHandler) Share(c *gin.Context) {
	var req dto.ShareSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("share request validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	resp, err := h.summaryUsecase.Share(c.Request.Context(), c.Param("id"), req.Recipients, req.Subject)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/summaries/:id
func (h *SummaryHandler) Delete(c *gin.Context) {
	resp, err := h.summaryUsecase.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleError maps lifecycle errors onto HTTP responses. Unanticipated
// errors stay opaque outside development mode.
func (h *SummaryHandler) handleError(c *gin.Context, err error) {
	var genErr *domain.GenerationError
	var delErr *domain.DeliveryError

	switch {
	case errors.Is(err, domain.ErrSummaryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})
	case errors.As(err, &genErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate summary",
			"message": genErr.Err.Error(),
		})
	case errors.As(err, &delErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"message": delErr.Err.Error(),
		})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		message := "Something went wrong"
		if h.devMode {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": message,
		})
	}
}
