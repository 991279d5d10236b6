package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, ComparePassword(hash, "correct horse"))
	assert.False(t, ComparePassword(hash, "wrong horse"))
	assert.NotEqual(t, "correct horse", hash)
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.IssueToken("user-1", "admin")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	token, err := m.IssueToken("user-1", "user")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewJWTManager("secret-a", time.Hour)
	b, _ := NewJWTManager("secret-b", time.Hour)

	token, err := a.IssueToken("user-1", "user")
	require.NoError(t, err)

	_, err = b.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	m, _ := NewJWTManager("secret", time.Hour)

	claims := &Claims{
		UserID: "user-1",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyToken(signed)
	assert.Error(t, err)
}
