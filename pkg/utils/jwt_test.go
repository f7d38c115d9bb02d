package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundtrip(t *testing.T) {
	SetSecret("roundtrip-secret")

	id := primitive.NewObjectID()
	token, err := GenerateToken(id, "manager")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetSecret("first-secret")
	token, err := GenerateToken(primitive.NewObjectID(), "employee")
	require.NoError(t, err)

	SetSecret("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SetSecret("any-secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
