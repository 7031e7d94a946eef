package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID  `gorm:"not null" json:"instructor_id"`
	StationID    *uuid.UUID `json:"station_id"`
	LessonType   string     `gorm:"size:20;not null" json:"lesson_type"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Date         string     `gorm:"size:10;not null" json:"date"`
	StartTime    string     `gorm:"size:5;not null" json:"start_time"`
	EndTime      string     `gorm:"size:5;not null" json:"end_time"`

	// Capacity invariant: 0 <= CurrentParticipants <= Capacity, and a
	// non-cancelled lesson is "full" exactly when the counter has reached
	// capacity. The counter is owned by the booking ledger and only moves
	// inside its locked transactions.
	Capacity            int `gorm:"not null;default:1" json:"capacity"`
	CurrentParticipants int `gorm:"not null;default:0" json:"current_participants"`

	Price  float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Status string  `gorm:"size:20;not null;default:'available'" json:"status"`

	// RecurrenceOf points generated occurrences back to the base lesson of a
	// recurring series. Each occurrence is an independent lesson.
	RecurrenceOf *uuid.UUID `json:"recurrence_of"`

	Instructor Instructor `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`
	Station    *Station   `gorm:"foreignkey:StationID" json:"station,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
