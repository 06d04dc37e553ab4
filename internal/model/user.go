package model

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	EmailVerified  bool       `gorm:"not null;default:false" json:"email_verified"`
	EmailOTP       string     `gorm:"size:8" json:"-"`
	EmailOTPSentAt *time.Time `json:"-"`

	// Most-recent-first list of generated summaries. Only ever
	// prepended to or reset to empty, never edited in place.
	SummarizeHistory []string `gorm:"serializer:json;type:longtext" json:"summarize_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
