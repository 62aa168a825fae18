package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
	"github.com/affan/clubsphere/internal/pkg/auth"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *fakeProfileStore) {
	t.Helper()
	profiles := newFakeProfileStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(profiles, jwtService, zerolog.Nop()), profiles
}

func TestRegisterCreatesStudentProfile(t *testing.T) {
	svc, profiles := newAuthServiceForTest(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@Campus.Edu",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.RoleStudent, resp.Profile.Role)

	// Email is normalized to lower case.
	stored, err := profiles.GetByEmail(context.Background(), "asha@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, stored.Role)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	req := &dto.RegisterRequest{Name: "Asha", Email: "asha@campus.edu", Password: "correct horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Asha", Email: "asha@campus.edu", Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "asha@campus.edu", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// Wrong password and unknown email fail identically.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "asha@campus.edu", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@campus.edu", Password: "correct horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Asha", Email: "asha@campus.edu", Password: "correct horse",
	})
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), reg.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@campus.edu", me.Email)

	_, err = svc.Me(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
