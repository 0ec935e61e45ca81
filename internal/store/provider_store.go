package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderStore struct{ db *gorm.DB }

func (s *Store) Providers() *ProviderStore { return &ProviderStore{db: s.DB} }

func (p *ProviderStore) Create(ctx context.Context, prov *models.Provider) error {
	if prov.ID == uuid.Nil {
		prov.ID = uuid.New()
	}
	return p.db.WithContext(ctx).Create(prov).Error
}

func (p *ProviderStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Provider, error) {
	var prov models.Provider
	if err := p.db.WithContext(ctx).First(&prov, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &prov, nil
}

func (p *ProviderStore) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	var prov models.Provider
	if err := p.db.WithContext(ctx).First(&prov, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &prov, nil
}

// UpdateByEmail writes the non-zero fields of changes to the provider matched
// by email and returns the number of rows affected.
func (p *ProviderStore) UpdateByEmail(ctx context.Context, email string, changes *models.Provider) (int64, error) {
	res := p.db.WithContext(ctx).Model(&models.Provider{}).
		Where("email = ?", email).
		Omit("id", "user_id", "created_at").
		Updates(changes)
	return res.RowsAffected, res.Error
}

// List returns all providers with their calendar link, if any.
func (p *ProviderStore) List(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	err := p.db.WithContext(ctx).Preload("Calendar").Order("created_at").Find(&providers).Error
	return providers, err
}

func (p *ProviderStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Provider{})
	return res.RowsAffected, res.Error
}
