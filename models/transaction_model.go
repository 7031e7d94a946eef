package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentTransaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID string    `gorm:"size:255;not null;unique" json:"session_id"`
	BookingID uuid.UUID `gorm:"not null" json:"booking_id"`
	UserID    uuid.UUID `gorm:"not null" json:"user_id"`

	Amount           float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Commission       float64 `gorm:"type:numeric(10,2);not null" json:"commission"`
	InstructorAmount float64 `gorm:"type:numeric(10,2);not null" json:"instructor_amount"`
	Currency         string  `gorm:"size:3;not null;default:'eur'" json:"currency"`

	Status string `gorm:"size:20;not null;default:'initiated'" json:"status"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"booking,omitempty"`
	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
