package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	issuer := NewIssuer("a-test-secret-of-some-length", time.Hour)
	id := uuid.New()

	token, err := issuer.GenerateToken(id)
	require.NoError(t, err)

	got, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestRejects(t *testing.T) {
	issuer := NewIssuer("a-test-secret-of-some-length", time.Hour)
	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewIssuer("another-secret-entirely", time.Hour).ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewIssuer("a-test-secret-of-some-length", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		s, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.ParseToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		bad := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		s, err := bad.SignedString([]byte("a-test-secret-of-some-length"))
		require.NoError(t, err)
		_, err = issuer.ParseToken(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewIssuer("x", 0).TTL())
}
