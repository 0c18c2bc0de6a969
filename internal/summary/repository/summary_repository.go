package repository

import (
	"time"

	"meetnotes-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SummaryRepository defines the persistence operations for summaries
type SummaryRepository interface {
	// Create inserts a new summary row
	Create(summary *domain.Summary) error
	// FindByID retrieves one summary, or nil when it does not exist
	FindByID(id string) (*domain.Summary, error)
	// List retrieves a page of summaries ordered by creation time descending,
	// optionally filtered by user, plus the total row count for the filter.
	// The projection excludes the transcript and carries a share count.
	List(userID string, limit, offset int) ([]*domain.SummaryListItem, int64, error)
	// MarkCompleted records a successful generation result
	MarkCompleted(id, aiSummary string, tokensIn, tokensOut int) (*domain.Summary, error)
	// MarkFailed records a failed generation attempt
	MarkFailed(id string) error
	// UpdateEditedSummary overwrites the user-edited summary text
	UpdateEditedSummary(id, editedSummary string) (*domain.Summary, error)
	// DeleteWithShares removes a summary and all of its shares in one transaction
	DeleteWithShares(id string) error
}

// gormSummaryRepository implements SummaryRepository using GORM
type gormSummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new GORM-based SummaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &gormSummaryRepository{db: db}
}

func (r *gormSummaryRepository) Create(summary *domain.Summary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	now := time.Now()
	summary.CreatedAt = now
	summary.UpdatedAt = now
	return r.db.Create(summary).Error
}

func (r *gormSummaryRepository) FindByID(id string) (*domain.Summary, error) {
	var summary domain.Summary
	err := r.db.Where("id = ?", id).First(&summary).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *gormSummaryRepository) List(userID string, limit, offset int) ([]*domain.SummaryListItem, int64, error) {
	query := r.db.Model(&domain.Summary{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []*domain.SummaryListItem{}
	err := query.
		Select("id, prompt, ai_summary, edited_summary, model, tokens_in, tokens_out, status, user_id, created_at, updated_at, " +
			"(SELECT count(*) FROM shares WHERE shares.summary_id = summaries.id) AS share_count").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *gormSummaryRepository) MarkCompleted(id, aiSummary string, tokensIn, tokensOut int) (*domain.Summary, error) {
	updates := map[string]interface{}{
		"ai_summary": aiSummary,
		"tokens_in":  tokensIn,
		"tokens_out": tokensOut,
		"status":     domain.StatusCompleted,
		"updated_at": time.Now(),
	}
	if err := r.db.Model(&domain.Summary{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *gormSummaryRepository) MarkFailed(id string) error {
	return r.db.Model(&domain.Summary{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.StatusFailed,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormSummaryRepository) UpdateEditedSummary(id, editedSummary string) (*domain.Summary, error) {
	err := r.db.Model(&domain.Summary{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"edited_summary": editedSummary,
			"updated_at":     time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *gormSummaryRepository) DeleteWithShares(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("summary_id = ?", id).Delete(&domain.Share{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Summary{}).Error
	})
}
