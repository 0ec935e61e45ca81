package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
)

type CalendarService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewCalendarService(st *store.Store, rec metrics.Recorder) *CalendarService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &CalendarService{store: st, metrics: rec}
}

// Attach links a calendar to the provider registered under providerEmail.
// The first link wins; later attempts fail with ErrAlreadyLinked.
func (s *CalendarService) Attach(ctx context.Context, providerEmail, link string) (*models.Calendar, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, ErrMissingCalendarLink
	}

	var calendar *models.Calendar
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		provider, err := tx.Providers().GetByEmail(ctx, providerEmail)
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrProviderNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Calendars().GetByProviderID(ctx, provider.ID)
		if err == nil {
			return ErrAlreadyLinked
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		cal := &models.Calendar{ProviderID: provider.ID, CalendarLink: link}
		if err := tx.Calendars().Create(ctx, cal); err != nil {
			if store.IsDuplicate(err) {
				return ErrAlreadyLinked
			}
			return err
		}
		calendar = cal
		return nil
	})

	switch {
	case err == nil:
		s.metrics.RecordCalendarLink("success")
		slog.Info("calendar linked", "email", providerEmail, "provider_id", calendar.ProviderID)
		return calendar, nil
	case errors.Is(err, ErrProviderNotFound):
		s.metrics.RecordCalendarLink("provider_not_found")
		return nil, err
	case errors.Is(err, ErrAlreadyLinked):
		s.metrics.RecordCalendarLink("already_linked")
		return nil, err
	default:
		s.metrics.RecordCalendarLink("error")
		slog.Error("calendar link failed", "email", providerEmail, "action", "attach_calendar", "error", err)
		return nil, fmt.Errorf("%w: attach calendar: %w", ErrStore, err)
	}
}
