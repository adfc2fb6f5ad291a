package entity

import (
	"time"

	"github.com/google/uuid"
)

// Label is the canonical verdict stored on a detection
type Label string

const (
	LabelFake    Label = "FAKE"
	LabelReal    Label = "REAL"
	LabelUnknown Label = "UNKNOWN"
)

// ExplanationUnavailable replaces an explanation the upstream model failed to produce
const ExplanationUnavailable = "explanation unavailable"

// IsFake reports whether the label is FAKE
func (l Label) IsFake() bool {
	return l == LabelFake
}

// Detection is one immutable classification outcome owned by a single user
type Detection struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID      string    `json:"user_id" gorm:"type:varchar(64);not null;index:idx_detections_user_created,priority:1"`
	NewsText    string    `json:"news_text" gorm:"type:text;not null"`
	Label       Label     `json:"label" gorm:"type:varchar(16);not null"`
	Score       float64   `json:"score" gorm:"not null"`
	Explanation *string   `json:"explanation"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_detections_user_created,priority:2"`
}

// TableName returns the table name for GORM
func (Detection) TableName() string {
	return "detections"
}

// NewDetection creates a Detection for owner. An empty explanation is stored as NULL.
func NewDetection(owner, newsText string, label Label, score float64, explanation string) *Detection {
	d := &Detection{
		ID:       uuid.New(),
		UserID:   owner,
		NewsText: newsText,
		Label:    label,
		Score:    score,
	}
	if explanation != "" {
		d.Explanation = &explanation
	}
	return d
}

// ExplanationText returns the explanation or "" when none was recorded
func (d *Detection) ExplanationText() string {
	if d.Explanation == nil {
		return ""
	}
	return *d.Explanation
}
