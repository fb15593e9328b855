package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "PowerKey", "ventas", "power-app", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "PowerKey", claims.Company)
	assert.Equal(t, "ventas", claims.Role)
	assert.Equal(t, "power-app", claims.Issuer)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "PowerKey", "admin", "power-app", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)

	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "PowerKey", "admin", "power-app", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)

	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "c", "admin", "i", 5)
	assert.Error(t, err)

	_, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
