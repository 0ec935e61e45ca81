package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarStore struct{ db *gorm.DB }

func (s *Store) Calendars() *CalendarStore { return &CalendarStore{db: s.DB} }

func (c *CalendarStore) Create(ctx context.Context, cal *models.Calendar) error {
	if cal.ID == uuid.Nil {
		cal.ID = uuid.New()
	}
	return c.db.WithContext(ctx).Create(cal).Error
}

func (c *CalendarStore) GetByProviderID(ctx context.Context, providerID uuid.UUID) (*models.Calendar, error) {
	var cal models.Calendar
	if err := c.db.WithContext(ctx).First(&cal, "provider_id = ?", providerID).Error; err != nil {
		return nil, notFound(err)
	}
	return &cal, nil
}

func (c *CalendarStore) DeleteByProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	res := c.db.WithContext(ctx).Where("provider_id = ?", providerID).Delete(&models.Calendar{})
	return res.RowsAffected, res.Error
}
