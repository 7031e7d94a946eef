package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Reference    string    `gorm:"size:12;not null;unique" json:"reference"`
	LessonID     uuid.UUID `gorm:"not null" json:"lesson_id"`
	UserID       uuid.UUID `gorm:"not null" json:"user_id"`
	Participants int       `gorm:"not null;default:1" json:"participants"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	PaymentSessionID *string `gorm:"size:255" json:"payment_session_id"`

	// Counted records whether this booking currently holds seats on the
	// lesson counter. Cancellation releases the seats at most once, guarded
	// by this flag rather than re-derived from Status.
	Counted bool `gorm:"not null;default:true" json:"-"`

	Lesson Lesson `gorm:"foreignkey:LessonID" json:"lesson,omitempty"`
	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
