package models

import "time"

// Report represents a user's moderation report against a post.
// A user may report a given post at most once.
type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_report_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_report_user_post" json:"post_id"`
	Reason    string    `gorm:"not null" json:"reason"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
