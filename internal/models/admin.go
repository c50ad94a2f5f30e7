package models

import "time"

// Admin is a back-office account allowed to edit site content.
type Admin struct {
	BaseModel
	Username    string     `gorm:"size:128;not null;uniqueIndex" json:"username"`
	Email       *string    `gorm:"size:255" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
