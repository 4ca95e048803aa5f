package usecases

import (
	"context"
	"fmt"

	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/auth"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/logger"
)

type mockUserRepository struct {
	createFunc        func(ctx context.Context, u *user.User) error
	getByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	updateFunc        func(ctx context.Context, u *user.User) error
	existsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return u.SetID(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("user not found")
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, fmt.Errorf("user not found")
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, u)
	}
	return nil
}

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
	createFunc       func(ctx context.Context, org *organization.Organization) error
	getByIDFunc      func(ctx context.Context, id uint) (*organization.Organization, error)
	existsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, org)
	}
	return org.SetID(1)
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
	if m.existsBySlugFunc != nil {
		return m.existsBySlugFunc(ctx, slug)
	}
	return false, nil
}

func (m *mockOrganizationRepository) ListActiveIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

type mockPasswordHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password, hash string) error
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordHasher) Verify(password, hash string) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(password, hash)
	}
	if "hashed:"+password != hash {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockTokenService struct {
	generateFunc func(userID, organizationID uint, role authorization.UserRole) (*auth.TokenPair, error)
	refreshFunc  func(refreshToken string) (*auth.TokenPair, error)
}

func (m *mockTokenService) Generate(userID, organizationID uint, role authorization.UserRole) (*auth.TokenPair, error) {
	if m.generateFunc != nil {
		return m.generateFunc(userID, organizationID, role)
	}
	return &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (m *mockTokenService) Refresh(refreshToken string) (*auth.TokenPair, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(refreshToken)
	}
	return &auth.TokenPair{AccessToken: "access2", RefreshToken: "refresh2", ExpiresIn: 900}, nil
}

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

func newTestUser(id uint, role authorization.UserRole) *user.User {
	u, err := user.NewUser("jamie@example.com", "Jamie", "hashed:correct horse battery", role, 1)
	if err != nil {
		panic(err)
	}
	if err := u.SetID(id); err != nil {
		panic(err)
	}
	return u
}
