package models

import "github.com/google/uuid"

// Profile represents a user account. IsAdmin gates the back office.
type Profile struct {
	Base
	Email   string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	IsAdmin bool   `gorm:"not null;default:false" json:"is_admin"`
}

// AdminUser holds back-office credentials for a profile.
type AdminUser struct {
	Base
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	ProfileID    uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
}
