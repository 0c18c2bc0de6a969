package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"meetnotes-backend/internal/summary/domain"
	"meetnotes-backend/internal/summary/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase implements usecase.SummaryUsecase with overridable funcs
type stubUsecase struct {
	generateFn func(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error)
	getByIDFn  func(ctx context.Context, id string) (*domain.Summary, error)
	listFn     func(ctx context.Context, page, limit int, userID string) (*dto.ListSummariesResponse, error)
	updateFn   func(ctx context.Context, id, editedSummary string) (*dto.UpdateSummaryResponse, error)
	shareFn    func(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error)
	deleteFn   func(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error)
}

func (s *stubUsecase) Generate(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
	return s.generateFn(ctx, transcript, prompt, model)
}

func (s *stubUsecase) GetByID(ctx context.Context, id string) (*domain.Summary, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUsecase) List(ctx context.Context, page, limit int, userID string) (*dto.ListSummariesResponse, error) {
	return s.listFn(ctx, page, limit, userID)
}

func (s *stubUsecase) Update(ctx context.Context, id, editedSummary string) (*dto.UpdateSummaryResponse, error) {
	return s.updateFn(ctx, id, editedSummary)
}

func (s *stubUsecase) Share(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error) {
	return s.shareFn(ctx, id, recipients, subject)
}

func (s *stubUsecase) Delete(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error) {
	return s.deleteFn(ctx, id)
}

func newTestRouter(stub *stubUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSummaryHandler(stub, false)

	r := gin.New()
	summaries := r.Group("/api/summaries")
	{
		summaries.POST("/generate", handler.Generate)
		summaries.GET("", handler.List)
		summaries.GET("/:id", handler.GetByID)
		summaries.PATCH("/:id", handler.Update)
		summaries.POST("/:id/share", handler.Share)
		summaries.DELETE("/:id", handler.Delete)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateRejectsShortTranscript(t *testing.T) {
	called := false
	stub := &stubUsecase{
		generateFn: func(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
			called = true
			return nil, nil
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/generate", gin.H{
		"transcript": "short",
		"prompt":     "summarize this",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestGenerateRejectsShortPrompt(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/generate", gin.H{
		"transcript": "a transcript of sufficient length",
		"prompt":     "hi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateDefaultsModel(t *testing.T) {
	var gotModel string
	stub := &stubUsecase{
		generateFn: func(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
			gotModel = model
			return &dto.GenerateSummaryResponse{ID: "sum-1", AISummary: "Hello summary", TokensIn: 50, TokensOut: 10, Model: model}, nil
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/generate", gin.H{
		"transcript": "a transcript of sufficient length",
		"prompt":     "summarize this meeting",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, dto.DefaultModel, gotModel)

	var resp dto.GenerateSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello summary", resp.AISummary)
	assert.Equal(t, 50, resp.TokensIn)
}

func TestGenerateFromMultipartFile(t *testing.T) {
	var gotTranscript, gotPrompt string
	stub := &stubUsecase{
		generateFn: func(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
			gotTranscript = transcript
			gotPrompt = prompt
			return &dto.GenerateSummaryResponse{ID: "sum-1", AISummary: "ok", Model: model}, nil
		},
	}
	r := newTestRouter(stub)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="transcript"; filename="meeting.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("the full transcript text from a file"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summaries/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "the full transcript text from a file", gotTranscript)
	assert.Equal(t, dto.DefaultPrompt, gotPrompt)
}

func TestGenerateMultipartRejectsNonTextFile(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="transcript"; filename="meeting.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summaries/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid file upload")
}

func TestGenerateMapsGenerationError(t *testing.T) {
	stub := &stubUsecase{
		generateFn: func(ctx context.Context, transcript, prompt, model string) (*dto.GenerateSummaryResponse, error) {
			return nil, &domain.GenerationError{SummaryID: "sum-1", Err: assert.AnError}
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/generate", gin.H{
		"transcript": "a transcript of sufficient length",
		"prompt":     "summarize this meeting",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate summary")
}

func TestListCoercesQueryParameters(t *testing.T) {
	var gotPage, gotLimit int
	var gotUserID string
	stub := &stubUsecase{
		listFn: func(ctx context.Context, page, limit int, userID string) (*dto.ListSummariesResponse, error) {
			gotPage = page
			gotLimit = limit
			gotUserID = userID
			return &dto.ListSummariesResponse{Summaries: []*domain.SummaryListItem{}}, nil
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodGet, "/api/summaries?page=0&limit=500&userId=user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, "user-1", gotUserID)

	w = doJSON(t, r, http.MethodGet, "/api/summaries", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, "", gotUserID)
}

func TestGetByIDNotFoundResponse(t *testing.T) {
	stub := &stubUsecase{
		getByIDFn: func(ctx context.Context, id string) (*domain.Summary, error) {
			return nil, domain.ErrSummaryNotFound
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodGet, "/api/summaries/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Summary not found", body["error"])
}

func TestUpdateRejectsEmptyEditedSummary(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPatch, "/api/summaries/sum-1", gin.H{"editedSummary": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareRejectsInvalidRecipient(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/sum-1/share", gin.H{
		"recipients": []string{"not-an-email"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareRejectsEmptyRecipients(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/sum-1/share", gin.H{
		"recipients": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareSuccessResponse(t *testing.T) {
	stub := &stubUsecase{
		shareFn: func(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error) {
			return &dto.ShareSummaryResponse{
				Success:    true,
				ShareID:    "share-1",
				Recipients: recipients,
				Subject:    subject,
				MessageID:  "m1",
			}, nil
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/sum-1/share", gin.H{
		"recipients": []string{"a@x.com", "b@x.com"},
		"subject":    "Notes",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ShareSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "m1", resp.MessageID)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, resp.Recipients)
}

func TestShareMapsDeliveryError(t *testing.T) {
	stub := &stubUsecase{
		shareFn: func(ctx context.Context, id string, recipients []string, subject string) (*dto.ShareSummaryResponse, error) {
			return nil, &domain.DeliveryError{SummaryID: id, Err: assert.AnError}
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/summaries/sum-1/share", gin.H{
		"recipients": []string{"a@x.com"},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send email")
}

func TestDeleteNotFoundResponse(t *testing.T) {
	stub := &stubUsecase{
		deleteFn: func(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error) {
			return nil, domain.ErrSummaryNotFound
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodDelete, "/api/summaries/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Summary not found"))
}

func TestDeleteSuccessResponse(t *testing.T) {
	stub := &stubUsecase{
		deleteFn: func(ctx context.Context, id string) (*dto.DeleteSummaryResponse, error) {
			return &dto.DeleteSummaryResponse{Success: true, Message: "Summary deleted successfully", DeletedID: id}, nil
		},
	}
	r := newTestRouter(stub)

	w := doJSON(t, r, http.MethodDelete, "/api/summaries/sum-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.DeleteSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sum-1", resp.DeletedID)
}
