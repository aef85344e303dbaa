// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Account roles. Exactly one role value per account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account in the Mirador application.
// Email is stored lowercase and is unique. The password hash is never
// serialized and is only selected on the authentication path.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Phone       string         `json:"phone"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"not null;default:user" json:"role"`
	Avatar      string         `gorm:"default:default-avatar.jpg" json:"avatar"`
	Bio         string         `json:"bio"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	IsBlocked   bool           `gorm:"not null;default:false" json:"is_blocked"`
	BlockReason string         `json:"block_reason"`
	LastLogin   *time.Time     `json:"last_login,omitempty"`
	LoginCount  int            `gorm:"not null;default:0" json:"login_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAct reports whether the account is usable: only active, unblocked
// accounts may authenticate or act. Re-checked live on every request.
func (u *User) CanAct() bool {
	return u.IsActive && !u.IsBlocked
}
