package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Picture  *string   `gorm:"size:512" json:"picture"`
	Role     string    `gorm:"size:20;not null;default:'client'" json:"role"`
	Password *string   `gorm:"size:255" json:"-"`
	IsActive bool      `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
