package models

import (
	"time"

	"gorm.io/datatypes"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName  string `gorm:"size:255;not null" json:"client_name"`
	ClientPhone string `gorm:"size:50" json:"client_phone"`
	ClientEmail string `gorm:"size:255" json:"client_email"`

	PetName  string `gorm:"size:255;not null" json:"pet_name"`
	PetBreed string `gorm:"size:255" json:"pet_breed"`

	ServiceID uint     `gorm:"not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION;" json:"-"`

	AppointmentDate string `gorm:"size:10;not null" json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`  // HH:MM
	Notes           string `gorm:"type:text" json:"notes"`

	Status          string         `gorm:"size:50;default:'pending';index" json:"status"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason"`
	ProposedChanges datatypes.JSON `json:"proposed_changes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
