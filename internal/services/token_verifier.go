package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/metrics"
	"github.com/golang-jwt/jwt/v5"
)

// VerifierConfig is the verification context shared by all requests.
type VerifierConfig struct {
	Audience string
	Issuers  []string
	Leeway   time.Duration
}

// GoogleClaims is the claim set of a Google ID token.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// IdentityClaims are the identity attributes taken from a verified token.
type IdentityClaims struct {
	Subject       string
	Name          string
	Email         string
	EmailVerified bool
}

type TokenVerifier struct {
	cfg     VerifierConfig
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
	metrics metrics.Recorder
}

// NewTokenVerifier builds a verifier for RS256 identity tokens whose signing
// keys are resolved by keyfunc.
func NewTokenVerifier(cfg VerifierConfig, keyfunc jwt.Keyfunc, rec metrics.Recorder) *TokenVerifier {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &TokenVerifier{
		cfg:     cfg,
		keyfunc: keyfunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(cfg.Leeway),
		),
		metrics: rec,
	}
}

// Verify checks signature, expiry, audience and issuer of rawToken and
// returns its identity claims. Every failure wraps ErrInvalidToken.
func (v *TokenVerifier) Verify(ctx context.Context, rawToken string) (*IdentityClaims, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawToken) == "" {
		v.metrics.RecordVerification("invalid")
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &GoogleClaims{}
	if _, err := v.parser.ParseWithClaims(rawToken, claims, v.keyfunc); err != nil {
		v.metrics.RecordVerification("invalid")
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	identity, err := v.CheckClaims(claims)
	if err != nil {
		v.metrics.RecordVerification("invalid")
		return nil, err
	}
	v.metrics.RecordVerification("success")
	return identity, nil
}

// CheckClaims applies the audience, issuer and email rules to claims whose
// signature has already been verified.
func (v *TokenVerifier) CheckClaims(claims *GoogleClaims) (*IdentityClaims, error) {
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}
	if !slices.Contains(claims.Audience, v.cfg.Audience) {
		return nil, fmt.Errorf("%w: audience %v does not include %s", ErrInvalidToken, []string(claims.Audience), v.cfg.Audience)
	}
	if !slices.Contains(v.cfg.Issuers, claims.Issuer) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	name := claims.Name
	if name == "" {
		name = strings.Split(claims.Email, "@")[0]
	}
	return &IdentityClaims{
		Subject:       claims.Subject,
		Name:          name,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// Keyfunc returns the signing key resolver, for middleware that parses the
// same tokens.
func (v *TokenVerifier) Keyfunc() jwt.Keyfunc { return v.keyfunc }
