package models

import (
	"github.com/google/uuid"
)

// Station is static reference data seeded at startup. No mutation endpoints.
type Station struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:255;not null;unique" json:"name"`
	Region    string    `gorm:"size:255;not null" json:"region"`
	Altitude  int       `gorm:"not null" json:"altitude"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}
