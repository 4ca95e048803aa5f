package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42, 3, authorization.RoleAgent)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(3), claims.OrganizationID)
	assert.Equal(t, authorization.RoleAgent, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	pair, err := NewJWTService("secret-a", 15, 7).Generate(1, 1, authorization.RoleCustomer)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 15, 7).Verify(pair.AccessToken)
	require.Error(t, err)
}

func TestJWTService_VerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	_, err := svc.Verify("not-a-token")
	require.Error(t, err)
}

func TestJWTService_RefreshRotatesPair(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(7, 2, authorization.RoleAdmin)
	require.NoError(t, err)

	newPair, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newPair.AccessToken)
	require.NotEmpty(t, newPair.RefreshToken)

	claims, err := svc.Verify(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(2), claims.OrganizationID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
}

func TestJWTService_RefreshRejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(7, 2, authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a refresh token")
}

func TestJWTService_ShouldRefresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	soon := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Minute)),
	}}
	later := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	assert.True(t, svc.ShouldRefresh(soon))
	assert.False(t, svc.ShouldRefresh(later))
	assert.False(t, svc.ShouldRefresh(nil))
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, hasher.Verify("s3cret-password", hash))
	assert.Error(t, hasher.Verify("wrong-password", hash))
	assert.Error(t, hasher.Verify("s3cret-password", "not-a-hash"))
}

func TestNewBcryptPasswordHasher_ClampsInvalidCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default.
	hasher := NewBcryptPasswordHasher(99)
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.NoError(t, hasher.Verify("pw", hash))
}
