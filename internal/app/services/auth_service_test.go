package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/auth"
)

func newTestAuthService(users *fakeUserStore, tokens *fakeTokenStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  1 * time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "school-locator.test",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop())
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:    "nankya.s",
		Email:       "nankya@example.ug",
		Password:    "Secret123!",
		FirstName:   "Sarah",
		LastName:    "Nankya",
		PhoneNumber: "0772123456",
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	svc := newTestAuthService(users, tokens)

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, "nankya@example.ug", resp.User.Email)
	assert.Equal(t, "student", resp.User.Role)

	// Password must be stored hashed
	stored, err := users.GetByEmail(context.Background(), "nankya@example.ug")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "Secret123!"))

	// Refresh token must be persisted
	userID, err := tokens.GetTokenUser(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

	req := validRegisterRequest()
	req.Email = "  Nankya@Example.UG  "

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "nankya@example.ug", resp.User.Email)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.RegisterRequest)
		wantErr error
	}{
		{
			name:    "bad email",
			mutate:  func(r *dto.RegisterRequest) { r.Email = "not-an-email" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "short password",
			mutate:  func(r *dto.RegisterRequest) { r.Password = "short" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "bad phone number",
			mutate:  func(r *dto.RegisterRequest) { r.PhoneNumber = "0412345678" },
			wantErr: apperrors.ErrInvalidPhoneNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	users := newFakeUserStore(&models.User{
		ID:       1,
		Username: "nankya.s",
		Email:    "nankya@example.ug",
	})
	svc := newTestAuthService(users, newFakeTokenStore())

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	req := validRegisterRequest()
	req.Email = "other@example.ug"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nankya@example.ug",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "nankya@example.ug", resp.User.Email)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nankya@example.ug",
		Password: "wrong-password",
	})
	_, unknownEmail := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.ug",
		Password: "Secret123!",
	})

	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := newTestAuthService(newFakeUserStore(), tokens)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	original := registered.Token.RefreshToken

	refreshed, err := svc.RefreshToken(context.Background(), original)
	require.NoError(t, err)
	assert.NotEqual(t, original, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old token is revoked; reusing it must fail
	_, err = svc.RefreshToken(context.Background(), original)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The new token keeps working
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshToken_UnknownToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeTokenStore())

	_, err := svc.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogout(t *testing.T) {
	tokens := newFakeTokenStore()
	svc := newTestAuthService(newFakeUserStore(), tokens)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.Token.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Logging out an unknown token is a no-op
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestGetProfile(t *testing.T) {
	users := newFakeUserStore(&models.User{
		ID:       5,
		Username: "okello.d",
		Email:    "okello@example.ug",
		Role:     models.RoleAdmin,
	})
	svc := newTestAuthService(users, newFakeTokenStore())

	profile, err := svc.GetProfile(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "okello.d", profile.Username)
	assert.Equal(t, "admin", profile.Role)

	_, err = svc.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
