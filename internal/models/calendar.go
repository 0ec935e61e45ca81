package models

import (
	"time"

	"github.com/google/uuid"
)

// Calendar links a provider to an external booking calendar. Immutable once set.
type Calendar struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"provider_id"`
	CalendarLink string    `gorm:"type:text;not null" json:"calendar_link"`
	CreatedAt    time.Time `json:"created_at"`
}
