package models

import "time"

// Service is a bookable grooming offering.
type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Duration    int     `gorm:"not null;check:duration > 0" json:"duration"` // minutes
	Price       float64 `gorm:"type:decimal(10,2);not null;check:price >= 0" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Active      bool    `gorm:"not null" json:"active"` // always written, no column default

	CreatedAt time.Time `json:"created_at"`
}
