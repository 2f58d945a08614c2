package domain

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	AuthProviderEmail     AuthProvider = "email"
	AuthProviderGoogle    AuthProvider = "google"
	AuthProviderMicrosoft AuthProvider = "microsoft"
	AuthProviderApple     AuthProvider = "apple"
	AuthProviderPhone     AuthProvider = "phone"
)

// SignInProviderMap maps an identity provider's reported sign-in method to an
// AuthProvider. Unrecognized methods fall back to google.
var SignInProviderMap = map[string]AuthProvider{
	"google.com":    AuthProviderGoogle,
	"microsoft.com": AuthProviderMicrosoft,
	"apple.com":     AuthProviderApple,
	"phone":         AuthProviderPhone,
}
