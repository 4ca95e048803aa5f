package usecases

import (
	"context"
	"fmt"
	"time"

	"autocrm/internal/domain/invite"
	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/logger"
)

type mockInviteRepository struct {
	createFunc             func(ctx context.Context, inv *invite.Invite) error
	getByTokenHashFunc     func(ctx context.Context, tokenHash string) (*invite.Invite, error)
	updateFunc             func(ctx context.Context, inv *invite.Invite) error
	consumeByTokenHashFunc func(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error)
	deleteExpiredFunc      func(ctx context.Context, before time.Time) (int64, error)
	listByOrganizationFunc func(ctx context.Context, organizationID uint) ([]*invite.Invite, error)
}

func (m *mockInviteRepository) Create(ctx context.Context, inv *invite.Invite) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, inv)
	}
	return inv.SetID(1)
}

func (m *mockInviteRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*invite.Invite, error) {
	if m.getByTokenHashFunc != nil {
		return m.getByTokenHashFunc(ctx, tokenHash)
	}
	return nil, fmt.Errorf("invite not found")
}

func (m *mockInviteRepository) Update(ctx context.Context, inv *invite.Invite) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, inv)
	}
	return nil
}

func (m *mockInviteRepository) ConsumeByTokenHash(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error) {
	if m.consumeByTokenHashFunc != nil {
		return m.consumeByTokenHashFunc(ctx, tokenHash, userID, now)
	}
	return true, nil
}

func (m *mockInviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx, before)
	}
	return 0, nil
}

func (m *mockInviteRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]*invite.Invite, error) {
	if m.listByOrganizationFunc != nil {
		return m.listByOrganizationFunc(ctx, organizationID)
	}
	return nil, nil
}

type mockUserRepository struct {
	createFunc        func(ctx context.Context, u *user.User) error
	existsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return u.SetID(10)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return nil, fmt.Errorf("user not found")
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, fmt.Errorf("user not found")
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFunc != nil {
		return m.existsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockOrganizationRepository struct {
	getByIDFunc func(ctx context.Context, id uint) (*organization.Organization, error)
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	return nil
}

func (m *mockOrganizationRepository) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return newTestOrganization(id), nil
}

func (m *mockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	return nil, fmt.Errorf("organization not found")
}

func (m *mockOrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	return nil
}

func (m *mockOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return false, nil
}

func (m *mockOrganizationRepository) ListActiveIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

type mockEmailService struct {
	sendInviteEmailFunc func(to, orgName, role, token string, expiryHours int) error
	sentInvites         []string
}

func (m *mockEmailService) SendInviteEmail(to, orgName, role, token string, expiryHours int) error {
	m.sentInvites = append(m.sentInvites, to)
	if m.sendInviteEmailFunc != nil {
		return m.sendInviteEmailFunc(to, orgName, role, token, expiryHours)
	}
	return nil
}

func (m *mockEmailService) SendTicketAssignedEmail(to, ticketNumber, ticketTitle string) error {
	return nil
}

func (m *mockEmailService) SendSLAOverdueEmail(to, ticketNumber, ticketTitle string) error {
	return nil
}

type mockPasswordHasher struct {
	hashFunc func(password string) (string, error)
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

// mockTransactionManager runs the function directly; rollback is simulated by
// the test asserting on the returned error.
type mockTransactionManager struct {
	runFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (l *mockLogger) Debug(msg string, args ...any)                   {}
func (l *mockLogger) Info(msg string, args ...any)                    {}
func (l *mockLogger) Warn(msg string, args ...any)                    {}
func (l *mockLogger) Error(msg string, args ...any)                   {}
func (l *mockLogger) Fatal(msg string, args ...any)                   {}
func (l *mockLogger) With(args ...any) logger.Interface               { return l }
func (l *mockLogger) Named(name string) logger.Interface              { return l }
func (l *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newTestOrganization(id uint) *organization.Organization {
	org, err := organization.NewOrganization("Acme Support", "acme-support")
	if err != nil {
		panic(err)
	}
	if err := org.SetID(id); err != nil {
		panic(err)
	}
	return org
}

// newTestInvite builds a persisted-looking agent invite for the given raw
// token, expiring in 72 hours.
func newTestInvite(id uint, rawToken string) *invite.Invite {
	inv, err := invite.NewInvite(
		HashInviteToken(rawToken),
		"new.agent@example.com",
		authorization.RoleAgent,
		1,
		2,
		biztime.NowUTC().Add(72*time.Hour),
	)
	if err != nil {
		panic(err)
	}
	if err := inv.SetID(id); err != nil {
		panic(err)
	}
	return inv
}

func newExpiredInvite(id uint, rawToken string) *invite.Invite {
	now := biztime.NowUTC()
	inv, err := invite.ReconstructInvite(
		id,
		HashInviteToken(rawToken),
		"late.agent@example.com",
		authorization.RoleAgent,
		1,
		2,
		now.Add(-time.Hour),
		nil,
		nil,
		now.Add(-73*time.Hour),
	)
	if err != nil {
		panic(err)
	}
	return inv
}
