package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/application/user/usecases"
	"autocrm/internal/interfaces/http/handlers/testutil"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
)

type mockRegisterUC struct {
	result *usecases.RegisterResult
	err    error
	gotCmd usecases.RegisterCommand
}

func (m *mockRegisterUC) Execute(_ context.Context, cmd usecases.RegisterCommand) (*usecases.RegisterResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	result *usecases.LoginResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ usecases.LoginCommand) (*usecases.LoginResult, error) {
	return m.result, m.err
}

type mockRefreshUC struct {
	result *usecases.RefreshTokenResult
	err    error
}

func (m *mockRefreshUC) Execute(_ context.Context, _ usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error) {
	return m.result, m.err
}

type mockProfileUC struct {
	result   *usecases.ProfileResult
	err      error
	gotQuery usecases.GetProfileQuery
}

func (m *mockProfileUC) Execute(_ context.Context, query usecases.GetProfileQuery) (*usecases.ProfileResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

func newTestAuthHandler(register *mockRegisterUC, login *mockLoginUC, refresh *mockRefreshUC, profile *mockProfileUC) *AuthHandler {
	if register == nil {
		register = &mockRegisterUC{}
	}
	if login == nil {
		login = &mockLoginUC{}
	}
	if refresh == nil {
		refresh = &mockRefreshUC{}
	}
	if profile == nil {
		profile = &mockProfileUC{}
	}
	return NewAuthHandler(register, login, refresh, profile, testutil.NewMockLogger())
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUC := &mockRegisterUC{
		result: &usecases.RegisterResult{
			UserID:         1,
			OrganizationID: 1,
			Email:          "founder@acme.test",
			AccessToken:    "access",
			RefreshToken:   "refresh",
			ExpiresIn:      900,
		},
	}
	handler := newTestAuthHandler(mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", RegisterRequest{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@acme.test",
		Name:             "Sam Founder",
		Password:         "strongpassword",
	})

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "acme-support", mockUC.gotCmd.OrganizationSlug)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestAuthHandler_Register_SlugTaken(t *testing.T) {
	mockUC := &mockRegisterUC{err: errors.NewConflictError("organization slug already taken")}
	handler := newTestAuthHandler(mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", RegisterRequest{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@acme.test",
		Name:             "Sam Founder",
		Password:         "strongpassword",
	})

	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_BindError(t *testing.T) {
	handler := newTestAuthHandler(nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", map[string]string{"email": "founder@acme.test"})

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUC := &mockLoginUC{
		result: &usecases.LoginResult{
			UserID:         1,
			OrganizationID: 1,
			Email:          "founder@acme.test",
			Name:           "Sam Founder",
			Role:           "admin",
			AccessToken:    "access",
			RefreshToken:   "refresh",
			ExpiresIn:      900,
		},
	}
	handler := newTestAuthHandler(nil, mockUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "founder@acme.test",
		Password: "strongpassword",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	mockUC := &mockLoginUC{err: errors.NewUnauthorizedError("invalid email or password")}
	handler := newTestAuthHandler(nil, mockUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "founder@acme.test",
		Password: "wrongpassword",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mockUC := &mockRefreshUC{
		result: &usecases.RefreshTokenResult{
			AccessToken:  "access2",
			RefreshToken: "refresh2",
			ExpiresIn:    900,
		},
	}
	handler := newTestAuthHandler(nil, nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshRequest{RefreshToken: "refresh"})

	handler.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	mockUC := &mockRefreshUC{err: errors.NewUnauthorizedError("invalid or expired refresh token")}
	handler := newTestAuthHandler(nil, nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshRequest{RefreshToken: "stale"})

	handler.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetProfile_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockProfileUC{
		result: &usecases.ProfileResult{
			UserID:           7,
			Email:            "jamie@example.com",
			Name:             "Jamie",
			Role:             "agent",
			OrganizationID:   3,
			OrganizationName: "Acme Support",
			Active:           true,
			CreatedAt:        now,
		},
	}
	handler := newTestAuthHandler(nil, nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)
	testutil.SetAuthContext(c, 7, 3, authorization.RoleAgent)

	handler.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotQuery.UserID)
}

func TestAuthHandler_GetProfile_NotFound(t *testing.T) {
	mockUC := &mockProfileUC{err: errors.NewNotFoundError("user not found")}
	handler := newTestAuthHandler(nil, nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)
	testutil.SetAuthContext(c, 99, 3, authorization.RoleAgent)

	handler.GetProfile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
