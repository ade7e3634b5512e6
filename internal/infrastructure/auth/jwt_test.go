package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	token, err := manager.Generate("fam-123", []string{auth.ScopeRead, auth.ScopeWrite})
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "fam-123", claims.FamilyID)
	require.True(t, claims.HasScope(auth.ScopeRead))
	require.True(t, claims.HasScope(auth.ScopeWrite))
}

func TestJWTManagerScopes(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	token, err := manager.Generate("fam-123", []string{auth.ScopeRead})
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	require.True(t, claims.HasScope(auth.ScopeRead))
	require.False(t, claims.HasScope(auth.ScopeWrite), "read-only token must not carry write scope")
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	expiredClaims := auth.Claims{
		FamilyID: "fam-expired",
		Scopes:   []string{auth.ScopeRead},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.Verify(expiredToken)
	require.ErrorIs(t, err, domain.ErrExpiredToken)

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	_, err = otherManager.Verify(expiredToken)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrExpiredToken)

	_, err = manager.Verify("not-a-token")
	require.Error(t, err)

	missingFamily := auth.Claims{
		Scopes: []string{auth.ScopeRead},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tokenNoFamily, err := jwt.NewWithClaims(jwt.SigningMethodHS256, missingFamily).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.Verify(tokenNoFamily)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
