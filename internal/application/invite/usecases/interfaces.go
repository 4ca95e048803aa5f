package usecases

import "context"

// PasswordHasher hashes signup passwords before they reach storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateInviteExecutor defines the interface for creating invites
type CreateInviteExecutor interface {
	Execute(ctx context.Context, cmd CreateInviteCommand) (*CreateInviteResult, error)
}

// CheckInviteExecutor defines the interface for validating invite tokens
type CheckInviteExecutor interface {
	Execute(ctx context.Context, query CheckInviteQuery) (*CheckInviteResult, error)
}

// AcceptInviteExecutor defines the interface for accepting invites
type AcceptInviteExecutor interface {
	Execute(ctx context.Context, cmd AcceptInviteCommand) (*AcceptInviteResult, error)
}
