package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.Contains(t, encoded, ".")

	assert.NoError(t, VerifyPassword("s3cret-pass", encoded))
	assert.ErrorIs(t, VerifyPassword("wrong-pass", encoded), ErrPasswordMismatch)
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedEncoding(t *testing.T) {
	assert.Error(t, VerifyPassword("pass", "not-an-encoded-hash"))
	assert.Error(t, VerifyPassword("pass", "!!!."+strings.Repeat("A", 8)))
	assert.Error(t, VerifyPassword("pass", "QUJD.!!!"))
}
