package models

import (
	"time"

	"github.com/google/uuid"
)

type Instructor struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"not null;unique" json:"user_id"`
	StationID   *uuid.UUID `json:"station_id"`
	Bio         string     `gorm:"type:text" json:"bio"`
	Specialties []string   `gorm:"serializer:json" json:"specialties"`
	SkiLevels   []string   `gorm:"serializer:json" json:"ski_levels"`
	HourlyRate  float64    `gorm:"type:numeric(10,2);not null;default:50.00" json:"hourly_rate"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AvgRating   float64    `gorm:"default:0" json:"avg_rating"`

	// CurrentBalance holds settled instructor amounts, credited on payment
	// reconciliation after the platform commission is deducted.
	CurrentBalance float64 `gorm:"type:numeric(10,2);default:0.00" json:"-"`

	User    User     `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Station *Station `gorm:"foreignkey:StationID" json:"station,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
