package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// SocialLoginInput is the DTO for federated sign-in requests.
type SocialLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

// SocialLoginOutput contains the results of a federated sign-in.
type SocialLoginOutput struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// SocialAuthService defines the federated authentication contract.
type SocialAuthService interface {
	SocialLogin(ctx context.Context, input SocialLoginInput) (*SocialLoginOutput, error)
}

type socialAuthService struct {
	verifier port.SocialTokenVerifier
	userRepo port.UserRepository
	authSvc  AuthService
}

// NewSocialAuthService creates a new SocialAuthService. A nil verifier means
// the identity provider integration is not configured; sign-in attempts then
// fail with ErrSocialAuthNotConfigured rather than a generic error.
func NewSocialAuthService(
	verifier port.SocialTokenVerifier,
	userRepo port.UserRepository,
	authSvc AuthService,
) SocialAuthService {
	return &socialAuthService{
		verifier: verifier,
		userRepo: userRepo,
		authSvc:  authSvc,
	}
}

func (s *socialAuthService) SocialLogin(ctx context.Context, input SocialLoginInput) (*SocialLoginOutput, error) {
	if s.verifier == nil {
		return nil, domain.ErrSocialAuthNotConfigured
	}
	if input.IDToken == "" {
		return nil, domain.NewValidationError([]string{"id token is required"})
	}

	claims, err := s.verifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, domain.ErrSocialAuthTokenInvalid
	}

	provider, ok := domain.SignInProviderMap[claims.SignInProvider]
	if !ok {
		provider = domain.AuthProviderGoogle
	}

	// 1. Returning federated user.
	user, err := s.userRepo.GetByFederatedID(ctx, claims.Subject)
	if err == nil {
		return s.issue(user, false)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up federated user: %w", err)
	}

	// 2. Existing password account with the same verified email: attach the
	// federated identity to it instead of creating a duplicate.
	if claims.Email != "" && claims.EmailVerified {
		email := strings.ToLower(claims.Email)
		user, err = s.userRepo.GetByEmail(ctx, email)
		if err == nil {
			var photo *string
			if claims.Picture != "" {
				photo = &claims.Picture
			}
			if linkErr := s.userRepo.LinkFederatedIdentity(ctx, user.ID, provider, claims.Subject, photo); linkErr != nil {
				return nil, fmt.Errorf("linking federated identity: %w", linkErr)
			}
			return s.issue(user, false)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("looking up email user: %w", err)
		}
	}

	// 3. First sign-in, create the account.
	user = s.newUserFromClaims(claims, provider)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user, true)
}

func (s *socialAuthService) issue(user *domain.User, isNew bool) (*SocialLoginOutput, error) {
	token, _, err := s.authSvc.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &SocialLoginOutput{Token: token, User: user, IsNewUser: isNew}, nil
}

func (s *socialAuthService) newUserFromClaims(claims *port.SocialAuthClaims, provider domain.AuthProvider) *domain.User {
	name := strings.TrimSpace(claims.Name)
	if name == "" && claims.Email != "" {
		name = strings.SplitN(claims.Email, "@", 2)[0]
	}
	if name == "" {
		name = "User"
	}

	sub := claims.Subject
	user := &domain.User{
		Name:         name,
		FederatedID:  &sub,
		AuthProvider: provider,
	}
	if claims.Email != "" {
		email := strings.ToLower(claims.Email)
		user.Email = &email
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.PhotoURL = &picture
	}
	if claims.PhoneNumber != "" {
		phone := claims.PhoneNumber
		user.Phone = &phone
		if user.Name == "User" && len(phone) >= 4 {
			user.Name = "User " + phone[len(phone)-4:]
		}
	}
	return user
}
