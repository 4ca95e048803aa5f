package usecases

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"autocrm/internal/domain/user"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID         uint   `json:"user_id"`
	OrganizationID uint   `json:"organization_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	ExpiresIn      int64  `json:"expires_in"`
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	uc.logger.Infow("executing login use case", "email", cmd.Email)

	if cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	account, err := uc.loadUserWithRetry(ctx, cmd.Email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if err := uc.hasher.Verify(cmd.Password, account.PasswordHash()); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if !account.Active() {
		return nil, errors.NewForbiddenError("account is deactivated")
	}

	account.RecordLogin()
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Warnw("failed to record login time",
			"user_id", account.ID(),
			"error", err)
	}

	pair, err := uc.tokens.Generate(account.ID(), account.OrganizationID(), account.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("user logged in successfully", "user_id", account.ID())

	return &LoginResult{
		UserID:         account.ID(),
		OrganizationID: account.OrganizationID(),
		Email:          account.Email(),
		Name:           account.Name(),
		Role:           account.Role().String(),
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		ExpiresIn:      pair.ExpiresIn,
	}, nil
}

// loadUserWithRetry reads the account with a short exponential backoff. A
// login attempt that races a just-committed signup can hit a replica that has
// not seen the row yet.
func (uc *LoginUseCase) loadUserWithRetry(ctx context.Context, email string) (*user.User, error) {
	var account *user.User
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		account, err = uc.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}
