package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const (
	minNameLen     = 2
	minPasswordLen = 6
	bcryptCost     = 12
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Claims represents the JWT claims embedded in the session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

// AuthResult holds the issued token and the authenticated account.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// SignupInput is the DTO for signup requests.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService defines the password authentication contract. The token it
// issues is the only session state; there is no server-side session store.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	IssueToken(user *domain.User) (string, time.Time, error)
}

type authService struct {
	userRepo port.UserRepository
	cfg      config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(userRepo port.UserRepository, cfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Collect every violation, not just the first.
	var violations []string
	if name == "" {
		violations = append(violations, "name is required")
	} else if len(name) < minNameLen {
		violations = append(violations, fmt.Sprintf("name must be at least %d characters", minNameLen))
	}
	if email == "" {
		violations = append(violations, "email is required")
	} else if !emailPattern.MatchString(email) {
		violations = append(violations, "email must be a valid email address")
	}
	if input.Password == "" {
		violations = append(violations, "password is required")
	} else if len(input.Password) < minPasswordLen {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if err := domain.NewValidationError(violations); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Signup: %w", err)
	}

	// Hashing is an explicit step before persistence, not a storage hook.
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        &email,
		PasswordHash: string(hash),
		AuthProvider: domain.AuthProviderEmail,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrDuplicateEmail propagates naturally
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.NewValidationError([]string{"email and password are required"})
	}

	// Unknown email and wrong password produce the same error so the
	// endpoint cannot be used to enumerate accounts.
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) IssueToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenExpiry)

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		UserID: user.ID,
		Name:   user.Name,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		// Expired and invalid tokens are both rejected; the distinction
		// exists only so the client can show a better message.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
