package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	userID, err := auth.Register("alice", "secret")
	require.NoError(t, err)
	assert.NotZero(t, userID)

	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash, "plaintext must never be stored")

	gotID, err := auth.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	_, err := auth.Register("", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = auth.Register("   ", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = auth.Register("bob", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = auth.Register("bob", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterTrimsUsername(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	userID, err := auth.Register("  carol  ", "secret")
	require.NoError(t, err)

	gotID, err := auth.Authenticate("carol", "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	userID, err := auth.Register("alice", "original")
	require.NoError(t, err)

	var before models.User
	require.NoError(t, db.First(&before, userID).Error)

	_, err = auth.Register("alice", "other")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// The existing user's credential must be untouched.
	var after models.User
	require.NoError(t, db.First(&after, userID).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAuthenticateFailsIndistinguishably(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	_, err := auth.Register("alice", "secret")
	require.NoError(t, err)

	_, wrongPassword := auth.Authenticate("alice", "nope")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, noSuchUser := auth.Authenticate("mallory", "nope")
	assert.ErrorIs(t, noSuchUser, ErrInvalidCredentials)

	assert.Equal(t, wrongPassword, noSuchUser)
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	userID, err := auth.Register("alice", "secret")
	require.NoError(t, err)

	token, err := auth.StartSession(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, err := auth.ResolveSession(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)

	require.NoError(t, auth.EndSession(token))

	_, err = auth.ResolveSession(token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Ending an already-ended session is a no-op, not an error.
	assert.NoError(t, auth.EndSession(token))
	assert.NoError(t, auth.EndSession("not-even-a-token"))
}

func TestResolveSessionRejectsInvalidTokens(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	_, err := auth.ResolveSession("")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = auth.ResolveSession("garbage.token.value")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// A token signed with a different secret must not resolve.
	user := seedUser(t, db, "alice")
	other := NewAuthService(db, &config.Config{JWTSecret: "othersecret", SessionTTLHours: 72})
	forged, err := other.StartSession(user.ID)
	require.NoError(t, err)

	_, err = auth.ResolveSession(forged)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestResolveSessionExpired(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, &config.Config{JWTSecret: "testsecret", SessionTTLHours: -1})

	user := seedUser(t, db, "alice")
	token, err := auth.StartSession(user.ID)
	require.NoError(t, err)

	_, err = auth.ResolveSession(token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
