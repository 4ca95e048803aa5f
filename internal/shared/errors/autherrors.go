package errors

import (
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Invalid credentials are expected and don't need error-level logging.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message never reveals whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenInvalidError creates an error for malformed or unverifiable tokens
func NewTokenInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}
