package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"complaint-desk/internal/model"
)

func TestNewTokenCodec(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec("  ", time.Hour)
	require.Error(t, err)

	_, err = NewTokenCodec("secret", 0)
	require.Error(t, err)
}

func TestTokenCodec(t *testing.T) {
	t.Parallel()

	t.Run("round trips the subject", func(t *testing.T) {
		codec := testCodec(t)

		token, err := codec.Issue(42)
		require.NoError(t, err)

		claims, err := codec.Parse(token)
		require.NoError(t, err)
		require.Equal(t, int64(42), claims.UserID)
		require.NotEmpty(t, claims.TokenID)
		require.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		codec := testCodec(t)
		codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := codec.Issue(1)
		require.NoError(t, err)

		codec.now = time.Now
		_, err = codec.Parse(token)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("rejects tampered and foreign tokens", func(t *testing.T) {
		codec := testCodec(t)
		token, err := codec.Issue(1)
		require.NoError(t, err)

		forged, err := codec.Issue(2)
		require.NoError(t, err)
		original := strings.Split(token, ".")
		spliced := strings.Join([]string{original[0], strings.Split(forged, ".")[1], original[2]}, ".")
		_, err = codec.Parse(spliced)
		require.ErrorIs(t, err, model.ErrTokenInvalid)

		other, err := NewTokenCodec("another-secret", time.Hour)
		require.NoError(t, err)
		foreign, err := other.Issue(1)
		require.NoError(t, err)
		_, err = codec.Parse(foreign)
		require.ErrorIs(t, err, model.ErrTokenInvalid)

		_, err = codec.Parse("not-a-token")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("rejects the none algorithm", func(t *testing.T) {
		codec := testCodec(t)
		claims := jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Parse(unsigned)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("rejects a non numeric subject", func(t *testing.T) {
		codec := testCodec(t)
		claims := jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Parse(signed)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
		require.False(t, strings.Contains(err.Error(), "someone"))
	})
}
