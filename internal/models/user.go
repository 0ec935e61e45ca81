package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account created on the first successful identity verification
// for an email address.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tokens   []Token   `gorm:"foreignKey:UserID" json:"-"`
	Provider *Provider `gorm:"foreignKey:UserID" json:"-"`
}
