package usecases

import (
	"context"

	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenUseCase struct {
	tokens TokenService
	logger logger.Interface
}

func NewRefreshTokenUseCase(tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		tokens: tokens,
		logger: logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	pair, err := uc.tokens.Refresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}

	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
