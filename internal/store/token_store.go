package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenStore struct{ db *gorm.DB }

func (s *Store) Tokens() *TokenStore { return &TokenStore{db: s.DB} }

func (t *TokenStore) Create(ctx context.Context, tok *models.Token) error {
	if tok.ID == uuid.Nil {
		tok.ID = uuid.New()
	}
	return t.db.WithContext(ctx).Create(tok).Error
}

func (t *TokenStore) Get(ctx context.Context, token string) (*models.Token, error) {
	var tok models.Token
	if err := t.db.WithContext(ctx).First(&tok, "token = ?", token).Error; err != nil {
		return nil, notFound(err)
	}
	return &tok, nil
}

func (t *TokenStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Token, error) {
	var tokens []models.Token
	err := t.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&tokens).Error
	return tokens, err
}

// DeleteByUser removes every token of the user, not only one credential.
func (t *TokenStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := t.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}
