package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/clinivent/clinivent/pkg/errors"
)

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	db := openTestDB(t)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Register(testCtx(), RegisterInput{
		Email:    "  Doctor@Example.com ",
		Password: "secret-password",
		Name:     "김원장",
	})
	require.NoError(t, err)
	require.Equal(t, "doctor@example.com", user.Email)
	require.NotEqual(t, "secret-password", user.PasswordHash)

	authed, err := svc.Authenticate(testCtx(), "DOCTOR@example.com", "secret-password")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(testCtx(), "doctor@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(testCtx(), "unknown@example.com", "whatever")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	db := openTestDB(t)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Register(testCtx(), RegisterInput{Email: "doctor@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Register(testCtx(), RegisterInput{Email: "Doctor@example.com", Password: "pw123456"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserServiceGetByID(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "doctor@example.com")

	svc, err := NewUserService(db)
	require.NoError(t, err)

	found, err := svc.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, found.Email)

	_, err = svc.GetByID(testCtx(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
