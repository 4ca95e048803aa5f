package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/application/invite/usecases"
	"autocrm/internal/interfaces/http/handlers/testutil"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
)

type mockCreateInviteUC struct {
	result *usecases.CreateInviteResult
	err    error
	gotCmd usecases.CreateInviteCommand
}

func (m *mockCreateInviteUC) Execute(_ context.Context, cmd usecases.CreateInviteCommand) (*usecases.CreateInviteResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockCheckInviteUC struct {
	result   *usecases.CheckInviteResult
	err      error
	gotQuery usecases.CheckInviteQuery
}

func (m *mockCheckInviteUC) Execute(_ context.Context, query usecases.CheckInviteQuery) (*usecases.CheckInviteResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockAcceptInviteUC struct {
	result *usecases.AcceptInviteResult
	err    error
}

func (m *mockAcceptInviteUC) Execute(_ context.Context, _ usecases.AcceptInviteCommand) (*usecases.AcceptInviteResult, error) {
	return m.result, m.err
}

func newTestInviteHandler(create *mockCreateInviteUC, check *mockCheckInviteUC, accept *mockAcceptInviteUC) *InviteHandler {
	if create == nil {
		create = &mockCreateInviteUC{}
	}
	if check == nil {
		check = &mockCheckInviteUC{}
	}
	if accept == nil {
		accept = &mockAcceptInviteUC{}
	}
	return NewInviteHandler(create, check, accept, testutil.NewMockLogger())
}

func TestInviteHandler_CreateAgentInvite_Success(t *testing.T) {
	mockUC := &mockCreateInviteUC{
		result: &usecases.CreateInviteResult{
			InviteID:  1,
			Email:     "new.agent@example.com",
			Role:      "agent",
			ExpiresAt: time.Now().Add(72 * time.Hour).UTC(),
		},
	}
	handler := newTestInviteHandler(mockUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/agent", CreateInviteRequest{Email: "new.agent@example.com"})
	testutil.SetAuthContext(c, 2, 3, authorization.RoleAdmin)

	handler.CreateAgentInvite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "agent", mockUC.gotCmd.Role)
	assert.Equal(t, uint(3), mockUC.gotCmd.OrganizationID)
	assert.Equal(t, uint(2), mockUC.gotCmd.InvitedBy)
}

func TestInviteHandler_CreateCustomerInvite_SetsCustomerRole(t *testing.T) {
	mockUC := &mockCreateInviteUC{
		result: &usecases.CreateInviteResult{InviteID: 2, Email: "client@example.com", Role: "customer"},
	}
	handler := newTestInviteHandler(mockUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/customer", CreateInviteRequest{Email: "client@example.com"})
	testutil.SetAuthContext(c, 2, 3, authorization.RoleAdmin)

	handler.CreateCustomerInvite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "customer", mockUC.gotCmd.Role)
}

func TestInviteHandler_CreateInvite_InvalidEmail(t *testing.T) {
	handler := newTestInviteHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/agent", map[string]string{"email": "not-an-email"})
	testutil.SetAuthContext(c, 2, 3, authorization.RoleAdmin)

	handler.CreateAgentInvite(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInviteHandler_CheckInvite_Success(t *testing.T) {
	mockUC := &mockCheckInviteUC{
		result: &usecases.CheckInviteResult{
			Email:          "new.agent@example.com",
			Role:           "agent",
			OrganizationID: 3,
			ExpiresAt:      time.Now().Add(24 * time.Hour).UTC(),
		},
	}
	handler := newTestInviteHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/invites/check/sometoken", nil)
	testutil.SetURLParam(c, "token", "sometoken")
	testutil.SetQueryParams(c, map[string]string{"kind": "agent"})

	handler.CheckInvite(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sometoken", mockUC.gotQuery.Token)
	assert.Equal(t, "agent", mockUC.gotQuery.Kind)
}

func TestInviteHandler_CheckInvite_Expired(t *testing.T) {
	mockUC := &mockCheckInviteUC{err: errors.NewInviteExpiredError()}
	handler := newTestInviteHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/invites/check/sometoken", nil)
	testutil.SetURLParam(c, "token", "sometoken")

	handler.CheckInvite(c)

	assert.Equal(t, http.StatusGone, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestInviteHandler_AcceptInvite_Success(t *testing.T) {
	mockUC := &mockAcceptInviteUC{
		result: &usecases.AcceptInviteResult{
			UserID:         42,
			Email:          "new.agent@example.com",
			Role:           "agent",
			OrganizationID: 3,
		},
	}
	handler := newTestInviteHandler(nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/accept", AcceptInviteRequest{
		Token:    "sometoken",
		Name:     "Jordan Agent",
		Password: "strongpassword",
	})

	handler.AcceptInvite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestInviteHandler_AcceptInvite_AlreadyConsumed(t *testing.T) {
	mockUC := &mockAcceptInviteUC{err: errors.NewInviteConsumedError()}
	handler := newTestInviteHandler(nil, nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/accept", AcceptInviteRequest{
		Token:    "sometoken",
		Name:     "Jordan Agent",
		Password: "strongpassword",
	})

	handler.AcceptInvite(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInviteHandler_AcceptInvite_ShortPassword(t *testing.T) {
	handler := newTestInviteHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/invites/accept", AcceptInviteRequest{
		Token:    "sometoken",
		Name:     "Jordan Agent",
		Password: "short",
	})

	handler.AcceptInvite(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
