package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:50;default:'admin'" json:"role"`

	// Device token for push delivery. Stored only, nothing sends to it yet.
	PushToken *string `gorm:"type:text" json:"push_token,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
