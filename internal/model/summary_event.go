package model

import "time"

// SummaryEvent is the audit record written asynchronously after a
// successful summarization.
type SummaryEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	VideoID      string    `gorm:"size:16;not null;index" json:"video_id"`
	SummaryChars int       `gorm:"not null" json:"summary_chars"`
	CreatedAt    time.Time `json:"created_at"`
}
