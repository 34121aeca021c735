package services

import (
	"context"
	"testing"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeSubscriptionRepo, *fakeCache) {
	t.Helper()

	users := newFakeUserRepo()
	subs := newFakeSubscriptionRepo()
	plans := newFakePlanRepo(plan("free", 1, 5))
	cache := newFakeCache()

	svc := NewAuthService(users, subs, plans, cache, "test-secret")
	return svc, users, subs, cache
}

func TestRegisterCreatesUserWithFreeSubscription(t *testing.T) {
	svc, users, subs, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	stored, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	sub, err := subs.GetActiveByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "", "password123", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "a@b.c", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "bob@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "password123", "Carol")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokedTokenStopsVerifying(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave@example.com", "password123", "Dave")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "dave@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, token))

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeTokenWithBrokenCache(t *testing.T) {
	svc, _, _, cache := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "erin@example.com", "password123", "Erin")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "erin@example.com", "password123")
	require.NoError(t, err)

	cache.err = assert.AnError
	err = svc.RevokeToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	// verification fails open when the denylist is unreachable
	cache.err = assert.AnError
	_, err = svc.VerifyToken(ctx, token)
	assert.NoError(t, err)
}

func TestVerifyTokenAdminGate(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "frank@example.com", "password123", "Frank")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "frank@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyTokenAdmin(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// promote and retry with a fresh token carrying the admin role
	user, err := users.GetByEmail(ctx, "frank@example.com")
	require.NoError(t, err)
	user.Role = models.RoleAdmin
	require.NoError(t, users.Update(ctx, user))

	token, err = svc.Login(ctx, "frank@example.com", "password123")
	require.NoError(t, err)

	admin, err := svc.VerifyTokenAdmin(ctx, token)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestChangePassword(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "grace@example.com", "password123", "Grace")
	require.NoError(t, err)

	// too short
	err = svc.ChangePassword(ctx, user.ID, "password123", "short")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// wrong current password
	err = svc.ChangePassword(ctx, user.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "password123", "newpassword1"))

	updated, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword1")))
}
