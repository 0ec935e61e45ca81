package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, st *store.Store, email, token string) *models.User {
	t.Helper()
	svc := NewIdentityService(st, nil, nil)
	_, err := svc.Reconcile(context.Background(), token, &IdentityClaims{Name: email, Email: email}, "")
	require.NoError(t, err)
	user, err := st.Users().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}

func annProfile() ProviderFields {
	return ProviderFields{
		FirstName:         "Ann",
		LastName:          "Lee",
		BusinessName:      "Ann's Tutoring",
		City:              "Oslo",
		Country:           "Norway",
		Profession:        "Tutor",
		YearsOfExperience: 7,
		HourlyRate:        50,
		Language:          "English",
	}
}

func TestRegisterProvider(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "ann@x.com", "t1")
	rec := newFakeRecorder()
	svc := NewProviderService(st, rec)

	p, err := svc.Register(context.Background(), "ann@x.com", annProfile())
	require.NoError(t, err)

	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "ann@x.com", p.Email)
	assert.Equal(t, 50.0, p.HourlyRate)
	assert.Equal(t, 7, p.YearsOfExperience)
	assert.Equal(t, 1, rec.count("registration:success"))
}

func TestRegisterProviderTwiceFails(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "ann@x.com", "t1")
	svc := NewProviderService(st, nil)
	ctx := context.Background()

	first, err := svc.Register(ctx, "ann@x.com", annProfile())
	require.NoError(t, err)

	second := annProfile()
	second.BusinessName = "Other Business"
	_, err = svc.Register(ctx, "ann@x.com", second)
	assert.ErrorIs(t, err, ErrAlreadyProvider)

	assert.EqualValues(t, 1, countRows(t, st.DB, &models.Provider{}, ""))
	stored, err := st.Providers().GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ann's Tutoring", stored.BusinessName)
}

func TestRegisterProviderUnknownUser(t *testing.T) {
	st := newTestStore(t)
	rec := newFakeRecorder()
	svc := NewProviderService(st, rec)

	_, err := svc.Register(context.Background(), "ghost@x.com", annProfile())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 1, rec.count("registration:user_not_found"))
}

func TestUpdateProvider(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "ann@x.com", "t1")
	svc := NewProviderService(st, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann@x.com", annProfile())
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "ann@x.com", ProviderFields{HourlyRate: 65, City: "Bergen"}))

	stored, err := st.Providers().GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, 65.0, stored.HourlyRate)
	assert.Equal(t, "Bergen", stored.City)
	assert.Equal(t, "Ann's Tutoring", stored.BusinessName, "zero fields are left untouched")
}

func TestUpdateUnknownProvider(t *testing.T) {
	svc := NewProviderService(newTestStore(t), nil)

	err := svc.Update(context.Background(), "ghost@x.com", ProviderFields{City: "Oslo"})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestListProvidersIncludesCalendar(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "ann@x.com", "t1")
	seedUser(t, st, "bob@x.com", "t2")
	svc := NewProviderService(st, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann@x.com", annProfile())
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob@x.com", ProviderFields{FirstName: "Bob"})
	require.NoError(t, err)
	_, err = NewCalendarService(st, nil).Attach(ctx, "ann@x.com", "https://cal.example/ann")
	require.NoError(t, err)

	providers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 2)

	byEmail := map[string]models.Provider{}
	for _, p := range providers {
		byEmail[p.Email] = p
	}
	require.NotNil(t, byEmail["ann@x.com"].Calendar)
	assert.Equal(t, "https://cal.example/ann", byEmail["ann@x.com"].Calendar.CalendarLink)
	assert.Nil(t, byEmail["bob@x.com"].Calendar)
}
