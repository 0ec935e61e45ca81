package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityService(t *testing.T) (*IdentityService, *tokenSigner, *fakeRecorder) {
	t.Helper()
	st := newTestStore(t)
	signer := newSigner(t)
	rec := newFakeRecorder()
	return NewIdentityService(st, newTestVerifier(signer, rec), rec), signer, rec
}

func ann() *IdentityClaims {
	return &IdentityClaims{Name: "Ann", Email: "ann@x.com"}
}

func TestReconcileCreatesUserAndToken(t *testing.T) {
	svc, _, rec := newIdentityService(t)
	ctx := context.Background()

	status, err := svc.Reconcile(ctx, "t1", ann(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, status)

	user, err := svc.store.Users().GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, DefaultRole, user.Role)

	tok, err := svc.store.Tokens().Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, tok.UserID)
	assert.Equal(t, 1, rec.count("reconciliation:created"))
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc, _, _ := newIdentityService(t)
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, "t1", ann(), "provider")
	require.NoError(t, err)
	second, err := svc.Reconcile(ctx, "t1", ann(), "provider")
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, first)
	assert.Equal(t, StatusExisting, second)

	db := svc.store.DB
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &models.Token{}, ""))
}

func TestReconcileLinksNewDevice(t *testing.T) {
	svc, _, _ := newIdentityService(t)
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, "tokenX", ann(), "")
	require.NoError(t, err)
	second, err := svc.Reconcile(ctx, "tokenY", ann(), "")
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, first)
	assert.Equal(t, StatusLinked, second)

	user, err := svc.store.Users().GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	tokens, err := svc.store.Tokens().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	for _, tok := range tokens {
		assert.Equal(t, user.ID, tok.UserID)
	}
	assert.EqualValues(t, 1, countRows(t, svc.store.DB, &models.User{}, ""))
}

func TestReconcileKeepsRoleOfExistingUser(t *testing.T) {
	svc, _, _ := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.Reconcile(ctx, "t1", ann(), "provider")
	require.NoError(t, err)
	_, err = svc.Reconcile(ctx, "t2", ann(), "admin")
	require.NoError(t, err)

	user, err := svc.store.Users().GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "provider", user.Role)
}

func TestReconcileRefusesToRebindToken(t *testing.T) {
	svc, _, rec := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.Reconcile(ctx, "shared", ann(), "")
	require.NoError(t, err)
	_, err = svc.Reconcile(ctx, "bob-token", &IdentityClaims{Name: "Bob", Email: "bob@x.com"}, "")
	require.NoError(t, err)

	_, err = svc.Reconcile(ctx, "shared", &IdentityClaims{Name: "Bob", Email: "bob@x.com"}, "")
	assert.ErrorIs(t, err, ErrTokenConflict)

	_, err = svc.Reconcile(ctx, "shared", &IdentityClaims{Name: "Cid", Email: "cid@x.com"}, "")
	assert.ErrorIs(t, err, ErrTokenConflict)

	_, err = svc.store.Users().GetByEmail(ctx, "cid@x.com")
	assert.Error(t, err, "failed reconcile must not leave a user behind")
	assert.Equal(t, 2, rec.count("reconciliation:error"))
}

func TestSignInVerifiesThenReconciles(t *testing.T) {
	svc, signer, rec := newIdentityService(t)
	ctx := context.Background()
	raw := signer.sign(t, googleClaims("Ann", "ann@x.com"))

	res, err := svc.SignIn(ctx, raw, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.Equal(t, "ann@x.com", res.Claims.Email)

	res, err = svc.SignIn(ctx, raw, "")
	require.NoError(t, err)
	assert.Equal(t, StatusExisting, res.Status)

	tok, err := svc.store.Tokens().Get(ctx, raw)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.UserID)
	assert.Equal(t, 2, rec.count("verification:success"))
}

func TestSignInWithInvalidTokenWritesNothing(t *testing.T) {
	svc, signer, _ := newIdentityService(t)
	c := googleClaims("Ann", "ann@x.com")
	c.Audience = []string{"wrong"}

	_, err := svc.SignIn(context.Background(), signer.sign(t, c), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.EqualValues(t, 0, countRows(t, svc.store.DB, &models.User{}, ""))
	assert.EqualValues(t, 0, countRows(t, svc.store.DB, &models.Token{}, ""))
}
