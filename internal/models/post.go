// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an image post in the Mirador application.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index:idx_posts_user_created" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user"`
	Content     string `gorm:"type:text" json:"content"`
	Image       string `gorm:"not null" json:"image"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `gorm:"not null;default:true;index:idx_posts_visibility" json:"is_active"`
	IsBlocked   bool   `gorm:"not null;default:false;index:idx_posts_visibility" json:"is_blocked"`
	BlockReason string `json:"block_reason"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// ReportsCount is not persisted; computed at query time
	ReportsCount int `gorm:"->" json:"reports_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `gorm:"index:idx_posts_user_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Visible reports whether the post may appear in public reads.
func (p *Post) Visible() bool {
	return p.IsActive && !p.IsBlocked
}
