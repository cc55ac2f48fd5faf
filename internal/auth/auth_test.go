package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	acc := models.Account{ID: 42, Name: "Jane", Email: "jane@example.com", Role: models.RoleUser}

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewIssuer("", time.Hour)
		require.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Hour)
		require.NoError(t, err)

		raw, err := issuer.Issue(acc)
		require.NoError(t, err)
		claims, err := issuer.Parse(raw)
		require.NoError(t, err)

		id, err := claims.AccountID()
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, "Jane", claims.Name)
		assert.Equal(t, models.RoleUser, claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Minute)
		require.NoError(t, err)
		issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

		raw, err := issuer.Issue(acc)
		require.NoError(t, err)

		issuer.now = time.Now
		_, err = issuer.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("foreign signature", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Hour)
		require.NoError(t, err)
		other, err := NewIssuer("other-secret", time.Hour)
		require.NoError(t, err)

		raw, err := other.Issue(acc)
		require.NoError(t, err)

		_, err = issuer.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Hour)
		require.NoError(t, err)

		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "user"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(unsigned)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Hour)
		require.NoError(t, err)

		_, err = issuer.Parse(strings.Repeat("x", 20))
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	// the old front-end sent md5 hex digests
	digest := "5f4dcc3b5aa765d61d8327deb882cf99"

	hash, err := HashPassword(digest)
	require.NoError(t, err)
	assert.NotEqual(t, digest, hash)

	require.NoError(t, CheckPassword(hash, digest))
	require.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
	require.Error(t, CheckPassword("not-a-hash", digest))
}
