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

const DefaultRole = "user"

type ReconcileStatus string

const (
	StatusCreated  ReconcileStatus = "created"
	StatusLinked   ReconcileStatus = "linked"
	StatusExisting ReconcileStatus = "existing"
)

// SignInResult is the outcome of verifying and reconciling an identity token.
type SignInResult struct {
	Status ReconcileStatus
	Claims *IdentityClaims
}

type IdentityService struct {
	store    *store.Store
	verifier *TokenVerifier
	metrics  metrics.Recorder
}

func NewIdentityService(st *store.Store, verifier *TokenVerifier, rec metrics.Recorder) *IdentityService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &IdentityService{store: st, verifier: verifier, metrics: rec}
}

// SignIn verifies rawToken and maps its claims to an account, creating the
// user or linking the token when needed.
func (s *IdentityService) SignIn(ctx context.Context, rawToken, role string) (*SignInResult, error) {
	claims, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		slog.Warn("identity token rejected", "error", err)
		return nil, err
	}

	status, err := s.Reconcile(ctx, rawToken, claims, role)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Status: status, Claims: claims}, nil
}

// Reconcile idempotently provisions the user for claims and records token
// against it. A unique violation from a concurrent sign-in for the same
// email or token is retried once, where the re-read settles on linked or
// existing.
func (s *IdentityService) Reconcile(ctx context.Context, token string, claims *IdentityClaims, role string) (ReconcileStatus, error) {
	if role == "" {
		role = DefaultRole
	}

	status, err := s.reconcile(ctx, token, claims, role)
	if store.IsDuplicate(err) {
		slog.Warn("reconcile raced a concurrent sign-in, retrying", "email", claims.Email)
		status, err = s.reconcile(ctx, token, claims, role)
		if store.IsDuplicate(err) {
			err = fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}

	if err != nil {
		s.metrics.RecordReconciliation("error")
		if !errors.Is(err, ErrTokenConflict) && !errors.Is(err, ErrConflict) {
			err = fmt.Errorf("%w: reconcile: %w", ErrStore, err)
		}
		slog.Error("reconcile failed", "email", claims.Email, "action", "reconcile", "error", err)
		return "", err
	}

	s.metrics.RecordReconciliation(string(status))
	slog.Info("identity reconciled", "email", claims.Email, "status", status)
	return status, nil
}

func (s *IdentityService) reconcile(ctx context.Context, token string, claims *IdentityClaims, role string) (ReconcileStatus, error) {
	var status ReconcileStatus

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		existingToken, err := tx.Tokens().Get(ctx, token)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		user, err := tx.Users().GetByEmail(ctx, claims.Email)
		if errors.Is(err, store.ErrRecordNotFound) {
			if existingToken != nil {
				return ErrTokenConflict
			}
			user = &models.User{Name: claims.Name, Email: claims.Email, Role: role}
			if err := tx.Users().Create(ctx, user); err != nil {
				return err
			}
			if err := tx.Tokens().Create(ctx, &models.Token{Token: token, UserID: user.ID}); err != nil {
				return err
			}
			status = StatusCreated
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case existingToken == nil:
			if err := tx.Tokens().Create(ctx, &models.Token{Token: token, UserID: user.ID}); err != nil {
				return err
			}
			status = StatusLinked
		case existingToken.UserID != user.ID:
			return ErrTokenConflict
		default:
			status = StatusExisting
		}
		return nil
	})
	return status, err
}
