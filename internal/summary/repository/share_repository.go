package repository

import (
	"time"

	"meetnotes-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareRepository defines the persistence operations for share records
type ShareRepository interface {
	// Create inserts a new share record
	Create(share *domain.Share) error
	// FindBySummaryID retrieves the newest shares of a summary, newest first
	FindBySummaryID(summaryID string, limit int) ([]domain.Share, error)
	// CountBySummaryID returns how many times a summary has been shared
	CountBySummaryID(summaryID string) (int64, error)
}

// gormShareRepository implements ShareRepository using GORM
type gormShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new GORM-based ShareRepository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &gormShareRepository{db: db}
}

func (r *gormShareRepository) Create(share *domain.Share) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	share.CreatedAt = time.Now()
	return r.db.Create(share).Error
}

func (r *gormShareRepository) FindBySummaryID(summaryID string, limit int) ([]domain.Share, error) {
	shares := []domain.Share{}
	err := r.db.Where("summary_id = ?", summaryID).
		Order("created_at DESC").
		Limit(limit).
		Find(&shares).Error
	return shares, err
}

func (r *gormShareRepository) CountBySummaryID(summaryID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Share{}).Where("summary_id = ?", summaryID).Count(&count).Error
	return count, err
}
