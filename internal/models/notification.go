package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION;" json:"-"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"size:50;default:'info'" json:"type"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
