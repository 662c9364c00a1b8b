package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "first@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)

	second, err := svc.Register(ctx, RegisterInput{Email: "second@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	phone := "+1555000"
	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret", Phone: &phone})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	_, err = svc.Register(ctx, RegisterInput{Email: "b@example.com", Password: "secret", Phone: &phone})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// A different phone is fine
	other := "+1555001"
	_, err = svc.Register(ctx, RegisterInput{Email: "c@example.com", Password: "secret", Phone: &other})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	token, isAdmin, err := svc.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, isAdmin)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ghost@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed for a subject that no longer resolves
	issuer := newTestIssuer(1440)
	token, err := issuer.GenerateToken("ghost@example.com", false, 1440)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))

	admin := seedUser(t, db, "admin@example.com", true)
	customer := seedUser(t, db, "customer@example.com", false)

	assert.NoError(t, svc.RequireAdmin(admin))
	assert.ErrorIs(t, svc.RequireAdmin(customer), ErrForbidden)
	assert.ErrorIs(t, svc.RequireAdmin(nil), ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestIssuer(1440))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "taken@example.com", Password: "secret"})
	require.NoError(t, err)

	name := "Alice"
	updated, err := svc.UpdateProfile(ctx, user, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "a@example.com", updated.Email)

	taken := "taken@example.com"
	_, err = svc.UpdateProfile(ctx, user, ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	fresh := "fresh@example.com"
	phone := "+1555777"
	updated, err = svc.UpdateProfile(ctx, user, ProfileUpdate{Email: &fresh, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+1555777", *updated.Phone)
}
