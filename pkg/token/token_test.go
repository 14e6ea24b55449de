package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haramaya.com/pharmatrack/pkg/apperror"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	signed, expiresAt, err := issuer.Issue("0199c3a4-7b2e-7cde-8f00-000000000001")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "0199c3a4-7b2e-7cde-8f00-000000000001", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	signed, _, err := issuer.Issue("some-user")
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, _, err := NewIssuer("secret-a", time.Hour).Issue("some-user")
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	}
}
