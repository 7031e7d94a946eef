package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID `gorm:"not null" json:"instructor_id"`
	UserID       uuid.UUID `gorm:"not null" json:"user_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`

	Instructor Instructor `gorm:"foreignkey:InstructorID" json:"-"`
	User       User       `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
