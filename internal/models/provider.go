package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the service-provider profile of a user. At most one per user.
type Provider struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName         string    `gorm:"size:100" json:"firstName"`
	LastName          string    `gorm:"size:100" json:"lastName"`
	Email             string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	BusinessName      string    `gorm:"size:255" json:"businessName"`
	ProfileImage      string    `gorm:"type:text" json:"profileImage"`
	PhoneNumber       string    `gorm:"size:50" json:"phoneNumber"`
	Address           string    `gorm:"size:255" json:"address"`
	City              string    `gorm:"size:100" json:"city"`
	Country           string    `gorm:"size:100" json:"country"`
	Profession        string    `gorm:"size:100" json:"profession"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	HourlyRate        float64   `json:"hourlyRate"`
	Language          string    `gorm:"size:100" json:"language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Calendar *Calendar `gorm:"foreignKey:ProviderID" json:"calendar,omitempty"`
}
