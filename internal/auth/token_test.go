package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_StaticToken(t *testing.T) {
	t.Parallel()

	v := NewValidator("s3cret", "")

	assert.NoError(t, v.Validate("s3cret"))
	assert.ErrorIs(t, v.Validate("wrong"), ErrInvalid)
	assert.ErrorIs(t, v.Validate(""), ErrInvalid)
}

func TestValidator_JWT(t *testing.T) {
	t.Parallel()

	secret := []byte("signing-key")
	v := NewValidator("", string(secret))

	tok, err := Generate(secret, "portal-api", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, v.Validate(tok))

	other, err := Generate([]byte("other-key"), "portal-api", time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Validate(other), ErrInvalid)
}

func TestParse_When_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := Generate(secret, "portal-api", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(tok, secret)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_ReturnsClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := Generate(secret, "portal-api", time.Minute)
	require.NoError(t, err)

	claims, err := Parse(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "portal-api", claims.Service)
	assert.Equal(t, "portal-api", claims.Subject)
}
