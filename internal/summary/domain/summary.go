package domain

import (
	"time"

	"github.com/lib/pq"
)

// SummaryStatus represents the generation lifecycle state of a summary
type SummaryStatus string

const (
	StatusPending   SummaryStatus = "pending"
	StatusCompleted SummaryStatus = "completed"
	StatusFailed    SummaryStatus = "failed"
)

// Summary represents one transcript-to-summary generation request and its result
type Summary struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	Transcript    string        `json:"transcript,omitempty" gorm:"type:text;not null"`
	Prompt        string        `json:"prompt" gorm:"type:text;not null"`
	Model         string        `json:"model" gorm:"not null"`
	AISummary     string        `json:"aiSummary" gorm:"column:ai_summary;type:text"`
	EditedSummary *string       `json:"editedSummary" gorm:"column:edited_summary;type:text"`
	TokensIn      *int          `json:"tokensIn"`
	TokensOut     *int          `json:"tokensOut"`
	Status        SummaryStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	UserID        *string       `json:"userId" gorm:"index"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Shares        []Share       `json:"shares,omitempty" gorm:"foreignKey:SummaryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// DisplayContent returns the content shown to readers: the user edit when
// one exists, otherwise the raw model output.
func (s *Summary) DisplayContent() string {
	if s.EditedSummary != nil && *s.EditedSummary != "" {
		return *s.EditedSummary
	}
	return s.AISummary
}

// Share records one email distribution of a summary. It is written once
// and never updated.
type Share struct {
	ID         string         `json:"id" gorm:"primaryKey"`
	SummaryID  string         `json:"summaryId" gorm:"index;not null"`
	Recipients pq.StringArray `json:"recipients" gorm:"type:text[];not null"`
	Subject    string         `json:"subject"`
	BodyHTML   string         `json:"bodyHtml" gorm:"column:body_html;type:text"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Share) TableName() string {
	return "shares"
}

// SummaryListItem is the list-view projection of a summary. The transcript
// column is excluded because it can be large.
type SummaryListItem struct {
	ID            string        `json:"id"`
	Prompt        string        `json:"prompt"`
	AISummary     string        `json:"aiSummary" gorm:"column:ai_summary"`
	EditedSummary *string       `json:"editedSummary" gorm:"column:edited_summary"`
	Model         string        `json:"model"`
	TokensIn      *int          `json:"tokensIn"`
	TokensOut     *int          `json:"tokensOut"`
	Status        SummaryStatus `json:"status"`
	UserID        *string       `json:"userId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	ShareCount    int64         `json:"shareCount" gorm:"column:share_count"`
}
