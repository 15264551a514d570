package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService("", DefaultTTL)
	assert.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc, err := NewService("test-secret", DefaultTTL)
	require.NoError(t, err)

	tokenString, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewService("secret-one", DefaultTTL)
	require.NoError(t, err)
	verifier, err := NewService("secret-two", DefaultTTL)
	require.NoError(t, err)

	tokenString, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = verifier.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	svc, err := NewService("test-secret", time.Nanosecond)
	require.NoError(t, err)

	tokenString, err := svc.Issue(1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc, err := NewService("test-secret", DefaultTTL)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}
