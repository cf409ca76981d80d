package auth_test

import (
	"testing"

	"andhara-backend/internal/auth"
	"andhara-backend/internal/config"
	"andhara-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "andhara-backend"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager(testConfig())
	user := &models.User{ID: 9, Email: "emp@andhara.com", Role: "employee", IsActive: true}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 9, claims.UserID)
	assert.Equal(t, "emp@andhara.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "andhara-backend", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.NewJWTManager(testConfig()).GenerateToken(&models.User{ID: 1})
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = auth.NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()

	_, err := auth.NewJWTManager(testConfig()).ValidateToken("not.a.token")
	assert.Error(t, err)
}
