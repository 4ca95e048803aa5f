package usecases

import (
	"context"

	"autocrm/internal/infrastructure/auth"
	"autocrm/internal/shared/authorization"
)

// PasswordHasher hashes passwords at signup and checks them at login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenService issues and rotates JWT pairs.
type TokenService interface {
	Generate(userID, organizationID uint, role authorization.UserRole) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, error)
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterExecutor defines the interface for bootstrapping an organization
type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error)
}

// LoginExecutor defines the interface for authenticating users
type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

// RefreshTokenExecutor defines the interface for rotating token pairs
type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

// GetProfileExecutor defines the interface for reading the current profile
type GetProfileExecutor interface {
	Execute(ctx context.Context, query GetProfileQuery) (*ProfileResult, error)
}
