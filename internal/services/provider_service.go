package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
)

// ProviderFields is the editable part of a provider profile.
type ProviderFields struct {
	FirstName         string
	LastName          string
	BusinessName      string
	ProfileImage      string
	PhoneNumber       string
	Address           string
	City              string
	Country           string
	Profession        string
	YearsOfExperience int
	HourlyRate        float64
	Language          string
}

func (f ProviderFields) apply(p *models.Provider) {
	p.FirstName = f.FirstName
	p.LastName = f.LastName
	p.BusinessName = f.BusinessName
	p.ProfileImage = f.ProfileImage
	p.PhoneNumber = f.PhoneNumber
	p.Address = f.Address
	p.City = f.City
	p.Country = f.Country
	p.Profession = f.Profession
	p.YearsOfExperience = f.YearsOfExperience
	p.HourlyRate = f.HourlyRate
	p.Language = f.Language
}

type ProviderService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewProviderService(st *store.Store, rec metrics.Recorder) *ProviderService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ProviderService{store: st, metrics: rec}
}

// Register promotes the user owning email to a provider. A user holds at
// most one provider profile.
func (s *ProviderService) Register(ctx context.Context, email string, fields ProviderFields) (*models.Provider, error) {
	var provider *models.Provider

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByEmail(ctx, email)
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Providers().GetByUserID(ctx, user.ID)
		if err == nil {
			return ErrAlreadyProvider
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		p := &models.Provider{UserID: user.ID, Email: email}
		fields.apply(p)
		if err := tx.Providers().Create(ctx, p); err != nil {
			if store.IsDuplicate(err) {
				return ErrAlreadyProvider
			}
			return err
		}
		provider = p
		return nil
	})

	switch {
	case err == nil:
		s.metrics.RecordProviderRegistration("success")
		slog.Info("provider registered", "email", email, "provider_id", provider.ID)
		return provider, nil
	case errors.Is(err, ErrUserNotFound):
		s.metrics.RecordProviderRegistration("user_not_found")
		return nil, err
	case errors.Is(err, ErrAlreadyProvider):
		s.metrics.RecordProviderRegistration("already_provider")
		return nil, err
	default:
		s.metrics.RecordProviderRegistration("error")
		slog.Error("provider registration failed", "email", email, "action", "register_provider", "error", err)
		return nil, fmt.Errorf("%w: register provider: %w", ErrStore, err)
	}
}

// Update overwrites the non-zero fields of the provider matched by email.
func (s *ProviderService) Update(ctx context.Context, email string, fields ProviderFields) error {
	changes := &models.Provider{Email: email}
	fields.apply(changes)

	n, err := s.store.Providers().UpdateByEmail(ctx, email, changes)
	if err != nil {
		slog.Error("provider update failed", "email", email, "action", "update_provider", "error", err)
		return fmt.Errorf("%w: update provider: %w", ErrStore, err)
	}
	if n != 1 {
		return ErrProviderNotFound
	}
	return nil
}

func (s *ProviderService) List(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.store.Providers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list providers: %w", ErrStore, err)
	}
	return providers, nil
}
