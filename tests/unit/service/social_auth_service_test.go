package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func googleClaims() *port.SocialAuthClaims {
	return &port.SocialAuthClaims{
		Subject:        "google-sub-12345",
		Email:          "Priya@Example.com",
		EmailVerified:  true,
		Name:           "Priya Singh",
		Picture:        "https://lh3.googleusercontent.com/photo.jpg",
		SignInProvider: "google.com",
	}
}

func newSocialService(verifier port.SocialTokenVerifier, userRepo port.UserRepository) service.SocialAuthService {
	authSvc := service.NewAuthService(userRepo, testJWTConfig())
	return service.NewSocialAuthService(verifier, userRepo, authSvc)
}

func TestSocialAuthService_NotConfigured(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(nil, userRepo)

	_, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	assert.ErrorIs(t, err, domain.ErrSocialAuthNotConfigured)
}

func TestSocialAuthService_InvalidToken(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	verifier.On("VerifyIDToken", mock.Anything, "bad-token").Return(nil, errors.New("aud mismatch"))

	_, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "bad-token"})

	assert.ErrorIs(t, err, domain.ErrSocialAuthTokenInvalid)
}

func TestSocialAuthService_ReturningUser(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	existing := &domain.User{
		ID:           uuid.New(),
		Name:         "Priya Singh",
		FederatedID:  strPtr("google-sub-12345"),
		AuthProvider: domain.AuthProviderGoogle,
	}
	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(googleClaims(), nil)
	userRepo.On("GetByFederatedID", mock.Anything, "google-sub-12345").Return(existing, nil)

	out, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	require.NoError(t, err)
	assert.False(t, out.IsNewUser)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, existing.ID, out.User.ID)
	userRepo.AssertNotCalled(t, "Create")
}

func TestSocialAuthService_LinksExistingEmailAccount(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	existing := &domain.User{
		ID:           uuid.New(),
		Name:         "Priya Singh",
		Email:        strPtr("priya@example.com"),
		PasswordHash: hashPassword("secret123"),
		AuthProvider: domain.AuthProviderEmail,
	}
	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(googleClaims(), nil)
	userRepo.On("GetByFederatedID", mock.Anything, "google-sub-12345").Return(nil, domain.ErrNotFound)
	userRepo.On("GetByEmail", mock.Anything, "priya@example.com").Return(existing, nil)
	userRepo.On("LinkFederatedIdentity", mock.Anything, existing.ID, domain.AuthProviderGoogle,
		"google-sub-12345", mock.Anything).Return(nil)

	out, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	require.NoError(t, err)
	assert.False(t, out.IsNewUser)
	userRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "Create")
}

func TestSocialAuthService_UnverifiedEmailNeverLinks(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	claims := googleClaims()
	claims.EmailVerified = false
	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(claims, nil)
	userRepo.On("GetByFederatedID", mock.Anything, "google-sub-12345").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	require.NoError(t, err)
	assert.True(t, out.IsNewUser)
	userRepo.AssertNotCalled(t, "GetByEmail")
	userRepo.AssertNotCalled(t, "LinkFederatedIdentity")
}

func TestSocialAuthService_CreatesNewUser(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(googleClaims(), nil)
	userRepo.On("GetByFederatedID", mock.Anything, "google-sub-12345").Return(nil, domain.ErrNotFound)
	userRepo.On("GetByEmail", mock.Anything, "priya@example.com").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Priya Singh" &&
			u.Email != nil && *u.Email == "priya@example.com" &&
			u.FederatedID != nil && *u.FederatedID == "google-sub-12345" &&
			u.AuthProvider == domain.AuthProviderGoogle &&
			u.PasswordHash == ""
	})).Return(nil)

	out, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	require.NoError(t, err)
	assert.True(t, out.IsNewUser)
	assert.NotEmpty(t, out.Token)
	userRepo.AssertExpectations(t)
}

func TestSocialAuthService_PhoneOnlyClaims(t *testing.T) {
	verifier := new(mocks.MockSocialTokenVerifier)
	userRepo := new(mocks.MockUserRepo)
	svc := newSocialService(verifier, userRepo)

	claims := &port.SocialAuthClaims{
		Subject:        "phone-sub-999",
		PhoneNumber:    "+919876543210",
		SignInProvider: "phone",
	}
	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(claims, nil)
	userRepo.On("GetByFederatedID", mock.Anything, "phone-sub-999").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "User 3210" &&
			u.Email == nil &&
			u.Phone != nil && *u.Phone == "+919876543210" &&
			u.AuthProvider == domain.AuthProviderPhone
	})).Return(nil)

	out, err := svc.SocialLogin(context.Background(), service.SocialLoginInput{IDToken: "tok"})

	require.NoError(t, err)
	assert.True(t, out.IsNewUser)
	userRepo.AssertExpectations(t)
}
