package models

import "time"

// Echo represents a voice post composed on this device by the current user.
type Echo struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	UserID     string    `gorm:"index;size:64;not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AudioURL   string    `gorm:"size:512" json:"audio_url"`
	Duration   int       `gorm:"not null" json:"duration"`
	VoiceStyle string    `gorm:"size:64" json:"voice_style"`
	Tags       string    `gorm:"type:text" json:"tags"` // JSON array of tags
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
