package usecases

import (
	"context"

	"autocrm/internal/domain/invite"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type AcceptInviteCommand struct {
	Token    string
	Name     string
	Password string
}

type AcceptInviteResult struct {
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID uint   `json:"organization_id"`
}

// AcceptInviteUseCase turns an invite into an account. The user row and the
// invite consumption commit in one transaction, and ConsumeByTokenHash lets
// exactly one of two racing accepts win.
type AcceptInviteUseCase struct {
	inviteRepo invite.Repository
	userRepo   user.Repository
	hasher     PasswordHasher
	txManager  TransactionManager
	logger     logger.Interface
}

func NewAcceptInviteUseCase(
	inviteRepo invite.Repository,
	userRepo user.Repository,
	hasher PasswordHasher,
	txManager TransactionManager,
	logger logger.Interface,
) *AcceptInviteUseCase {
	return &AcceptInviteUseCase{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		hasher:     hasher,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *AcceptInviteUseCase) Execute(ctx context.Context, cmd AcceptInviteCommand) (*AcceptInviteResult, error) {
	uc.logger.Infow("executing accept invite use case")

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	tokenHash := HashInviteToken(cmd.Token)

	inv, err := uc.inviteRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, errors.NewNotFoundError("invite not found")
	}

	if inv.IsConsumed() {
		return nil, errors.NewInviteConsumedError()
	}
	if inv.IsExpired(biztime.NowUTC()) {
		return nil, errors.NewInviteExpiredError()
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	newUser, err := user.NewUser(inv.Email(), cmd.Name, passwordHash, inv.Role(), inv.OrganizationID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, newUser); err != nil {
			return errors.NewInternalError("failed to create user")
		}
		won, err := uc.inviteRepo.ConsumeByTokenHash(txCtx, tokenHash, newUser.ID(), biztime.NowUTC())
		if err != nil {
			return errors.NewInternalError("failed to consume invite")
		}
		if !won {
			// Another accept got there between our read and this write.
			return errors.NewInviteConsumedError()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("invite accepted successfully",
		"invite_id", inv.ID(),
		"user_id", newUser.ID(),
		"role", newUser.Role().String())

	return &AcceptInviteResult{
		UserID:         newUser.ID(),
		Email:          newUser.Email(),
		Role:           newUser.Role().String(),
		OrganizationID: newUser.OrganizationID(),
	}, nil
}

func (uc *AcceptInviteUseCase) validateCommand(cmd AcceptInviteCommand) error {
	if cmd.Token == "" {
		return errors.NewValidationError("token is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if len(cmd.Password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	return nil
}
