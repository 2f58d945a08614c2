package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrTokenExpired            = errors.New("token has expired")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrDuplicateEmail          = errors.New("an account with this email already exists")
	ErrDuplicateInvoiceNumber  = errors.New("invoice number already assigned")
	ErrSocialAuthTokenInvalid  = errors.New("social authentication token is invalid or expired")
	ErrSocialAuthNotConfigured = errors.New("social authentication is not configured")
	ErrDatabaseNotReady        = errors.New("database not connected yet")
)
