package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile represents the device user's profile.
type UserProfile struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	Username       string     `gorm:"size:64;not null" json:"username"`
	DisplayName    string     `gorm:"size:128" json:"display_name"`
	Email          string     `gorm:"size:255" json:"email"`
	Avatar         string     `gorm:"size:512" json:"avatar"`
	Bio            string     `gorm:"size:512" json:"bio"`
	Location       string     `gorm:"size:128" json:"location"`
	Website        string     `gorm:"size:255" json:"website"`
	JoinDate       time.Time  `json:"join_date"`
	IsVerified     bool       `gorm:"default:false" json:"is_verified"`
	FollowerCount  int        `gorm:"default:0" json:"follower_count"`
	FollowingCount int        `gorm:"default:0" json:"following_count"`
	EchoCount      int        `gorm:"default:0" json:"echo_count"`
	IsPrivate      bool       `gorm:"default:false" json:"is_private"`
	AllowDMs       bool       `gorm:"column:allow_dms;default:true" json:"allow_direct_messages"`
	ShowEmail      bool       `gorm:"default:false" json:"show_email"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastSeenAt     *time.Time `json:"last_seen_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *UserProfile) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
