package auth_test

import (
	"testing"

	"andhara-backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.VerifyPassword(hash, "s3cret-password"))
	assert.False(t, auth.VerifyPassword(hash, "wrong-password"))
}
