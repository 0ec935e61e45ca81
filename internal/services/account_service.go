package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
)

type AccountService struct {
	store   *store.Store
	metrics metrics.Recorder
}

func NewAccountService(st *store.Store, rec metrics.Recorder) *AccountService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &AccountService{store: st, metrics: rec}
}

// Erase deletes the account owning token: its calendar link, provider
// profile, every token and the user row, all in one transaction.
func (s *AccountService) Erase(ctx context.Context, token string) (store.DeletedCounts, error) {
	tok, err := s.store.Tokens().Get(ctx, token)
	if errors.Is(err, store.ErrRecordNotFound) {
		s.metrics.RecordErasure("not_found")
		return store.DeletedCounts{}, ErrTokenNotFound
	}
	if err != nil {
		s.metrics.RecordErasure("error")
		return store.DeletedCounts{}, fmt.Errorf("%w: resolve token: %w", ErrStore, err)
	}

	counts, err := s.store.DeleteAccount(ctx, tok.UserID)
	if err != nil {
		s.metrics.RecordErasure("error")
		slog.Error("account erase failed", "user_id", tok.UserID.String(), "action", "erase_account", "error", err)
		return store.DeletedCounts{}, fmt.Errorf("%w: erase account: %w", ErrStore, err)
	}
	if counts.Users == 0 {
		// a concurrent erase removed the account after the token lookup
		s.metrics.RecordErasure("not_found")
		return store.DeletedCounts{}, ErrTokenNotFound
	}

	s.metrics.RecordErasure("success")
	slog.Info("account erased",
		"user_id", tok.UserID.String(),
		"tokens", counts.Tokens,
		"providers", counts.Providers,
		"calendars", counts.Calendars,
	)
	return counts, nil
}
