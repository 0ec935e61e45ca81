package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func jwksJSON(t *testing.T, kid string, pub *rsa.PublicKey) json.RawMessage {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestVerifyWithJWKSKeySet(t *testing.T) {
	signer := newSigner(t)
	jwks, err := keyfunc.NewJSON(jwksJSON(t, signer.kid, &signer.key.PublicKey))
	require.NoError(t, err)

	v := NewTokenVerifier(VerifierConfig{Audience: testAudience, Issuers: testIssuers}, jwks.Keyfunc, nil)

	claims, err := v.Verify(context.Background(), signer.sign(t, googleClaims("Ann", "ann@x.com")))
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Email)
}

func TestVerifyWithJWKSRejectsUnknownKid(t *testing.T) {
	signer := newSigner(t)
	jwks, err := keyfunc.NewJSON(jwksJSON(t, "rotated-away", &signer.key.PublicKey))
	require.NoError(t, err)

	v := NewTokenVerifier(VerifierConfig{Audience: testAudience, Issuers: testIssuers}, jwks.Keyfunc, nil)

	_, err = v.Verify(context.Background(), signer.sign(t, googleClaims("Ann", "ann@x.com")))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
