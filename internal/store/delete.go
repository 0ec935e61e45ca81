package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DeletedCounts holds the number of rows removed per table by DeleteAccount.
type DeletedCounts struct {
	Calendars int64 `json:"calendars"`
	Providers int64 `json:"providers"`
	Tokens    int64 `json:"tokens"`
	Users     int64 `json:"users"`
}

// DeleteAccount removes a user and everything hanging off it in one
// transaction, children first: calendar, provider, tokens, user.
func (s *Store) DeleteAccount(ctx context.Context, userID uuid.UUID) (DeletedCounts, error) {
	var counts DeletedCounts

	err := s.WithTx(ctx, func(tx *Store) error {
		prov, err := tx.Providers().GetByUserID(ctx, userID)
		switch {
		case err == nil:
			if counts.Calendars, err = tx.Calendars().DeleteByProvider(ctx, prov.ID); err != nil {
				return err
			}
			if counts.Providers, err = tx.Providers().Delete(ctx, prov.ID); err != nil {
				return err
			}
		case !errors.Is(err, ErrRecordNotFound):
			return err
		}

		if counts.Tokens, err = tx.Tokens().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		counts.Users, err = tx.Users().Delete(ctx, userID)
		return err
	})
	if err != nil {
		return DeletedCounts{}, err
	}
	return counts, nil
}
