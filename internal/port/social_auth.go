package port

import "context"

// SocialAuthClaims holds the verified claims from a federated identity provider.
type SocialAuthClaims struct {
	Subject        string // Provider-specific user ID (e.g. Google "sub" claim)
	Email          string
	EmailVerified  bool
	Name           string
	Picture        string
	PhoneNumber    string
	SignInProvider string // Provider-reported sign-in method, e.g. "google.com"
}

// SocialTokenVerifier validates an ID token from a federated identity provider.
type SocialTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*SocialAuthClaims, error)
	Provider() string
}
