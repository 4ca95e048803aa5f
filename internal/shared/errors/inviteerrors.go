package errors

import "net/http"

// Invite-specific error types
const (
	ErrorTypeInviteExpired  ErrorType = "invite_expired"
	ErrorTypeInviteConsumed ErrorType = "invite_consumed"
)

// NewInviteExpiredError creates an error for invites past their expiry time
func NewInviteExpiredError() *AppError {
	return &AppError{
		Type:    ErrorTypeInviteExpired,
		Message: "Invite has expired",
		Code:    http.StatusGone,
	}
}

// NewInviteConsumedError creates an error for invites that were already accepted
func NewInviteConsumedError() *AppError {
	return &AppError{
		Type:    ErrorTypeInviteConsumed,
		Message: "Invite has already been accepted",
		Code:    http.StatusConflict,
	}
}
