package models

import (
	"time"

	"github.com/google/uuid"
)

// Token is one identity token seen for a user. A user may hold several
// (one per device or session); a token value belongs to exactly one user.
type Token struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
