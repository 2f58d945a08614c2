package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:      "test-secret-key-for-unit-tests",
		TokenExpiry: 168 * time.Hour,
		Issuer:      "gstbill-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(hash)
}

func strPtr(s string) *string { return &s }

func TestAuthService_Signup_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "ravi@example.com").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Ravi Kumar" &&
			u.Email != nil && *u.Email == "ravi@example.com" &&
			u.PasswordHash != "" && u.PasswordHash != "secret123" &&
			u.AuthProvider == domain.AuthProviderEmail
	})).Return(nil)

	result, err := svc.Signup(context.Background(), service.SignupInput{
		Name:     "  Ravi Kumar  ",
		Email:    "Ravi@Example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now().Add(167*time.Hour)))
	assert.Equal(t, "Ravi Kumar", result.User.Name)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Signup_CollectsAllViolations(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Name:     "R",
		Email:    "not-an-email",
		Password: "abc",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 3)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	existing := &domain.User{ID: uuid.New(), Email: strPtr("ravi@example.com")}
	userRepo.On("GetByEmail", mock.Anything, "ravi@example.com").Return(existing, nil)

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Name:         "Ravi Kumar",
		Email:        strPtr("ravi@example.com"),
		PasswordHash: hashPassword("secret123"),
		AuthProvider: domain.AuthProviderEmail,
	}
	userRepo.On("GetByEmail", mock.Anything, "ravi@example.com").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "RAVI@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strPtr("ravi@example.com"),
		PasswordHash: hashPassword("secret123"),
	}
	userRepo.On("GetByEmail", mock.Anything, "ravi@example.com").Return(user, nil)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, errWrongPass := svc.Login(context.Background(), service.LoginInput{
		Email:    "ravi@example.com",
		Password: "wrong-password",
	})
	_, errUnknown := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_FederatedAccountWithoutPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	// Accounts created through Google have no password hash; a password
	// login against them must fail like any other bad credential.
	user := &domain.User{
		ID:           uuid.New(),
		Email:        strPtr("ravi@example.com"),
		PasswordHash: "",
		AuthProvider: domain.AuthProviderGoogle,
	}
	userRepo.On("GetByEmail", mock.Anything, "ravi@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ravi@example.com",
		Password: "anything",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{ID: uuid.New(), Name: "Ravi Kumar", Email: strPtr("ravi@example.com")}
	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Ravi Kumar", claims.Name)
	assert.Equal(t, "ravi@example.com", claims.Email)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	cfg := testJWTConfig()
	cfg.TokenExpiry = -time.Hour
	svc := service.NewAuthService(userRepo, cfg)

	user := &domain.User{ID: uuid.New(), Name: "Ravi Kumar"}
	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)

	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-different-secret"
	otherSvc := service.NewAuthService(userRepo, otherCfg)

	user := &domain.User{ID: uuid.New()}
	token, _, err := otherSvc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
