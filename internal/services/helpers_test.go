package services

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAudience = "client-123.apps.googleusercontent.com"

var testIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return store.New(db)
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

type tokenSigner struct {
	key *rsa.PrivateKey
	kid string
}

var (
	signerOnce sync.Once
	signerKey  *rsa.PrivateKey
)

func newSigner(t *testing.T) *tokenSigner {
	t.Helper()
	signerOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		signerKey = key
	})
	return &tokenSigner{key: signerKey, kid: "test-key-1"}
}

func (s *tokenSigner) sign(t *testing.T, claims GoogleClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = s.kid
	raw, err := tok.SignedString(s.key)
	require.NoError(t, err)
	return raw
}

func (s *tokenSigner) keyfunc(*jwt.Token) (any, error) {
	return &s.key.PublicKey, nil
}

func googleClaims(name, email string) GoogleClaims {
	now := time.Now()
	return GoogleClaims{
		Email:         email,
		EmailVerified: true,
		Name:          name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Subject:   "sub-" + email,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func newTestVerifier(s *tokenSigner, rec *fakeRecorder) *TokenVerifier {
	cfg := VerifierConfig{Audience: testAudience, Issuers: testIssuers}
	if rec == nil {
		return NewTokenVerifier(cfg, s.keyfunc, nil)
	}
	return NewTokenVerifier(cfg, s.keyfunc, rec)
}

type fakeRecorder struct {
	mu     sync.Mutex
	events map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{events: make(map[string]int)}
}

func (f *fakeRecorder) add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[key]++
}

func (f *fakeRecorder) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[key]
}

func (f *fakeRecorder) RecordVerification(r string)         { f.add("verification:" + r) }
func (f *fakeRecorder) RecordReconciliation(s string)       { f.add("reconciliation:" + s) }
func (f *fakeRecorder) RecordProviderRegistration(r string) { f.add("registration:" + r) }
func (f *fakeRecorder) RecordCalendarLink(r string)         { f.add("calendar:" + r) }
func (f *fakeRecorder) RecordErasure(r string)              { f.add("erasure:" + r) }
