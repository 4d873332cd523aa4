package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGetHash_And_CompareHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "обычный пароль",
			password: "password123",
		},
		{
			name:     "пароль со спецсимволами",
			password: "p@$$w0rd!#%",
		},
		{
			name:     "пароль с юникодом",
			password: "пароль123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password, bcrypt.MinCost)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.NoError(t, CompareHash(hash, tt.password))
		})
	}
}

func TestCompareHash_WrongPassword(t *testing.T) {
	hash, err := GetHash("correct-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.Error(t, CompareHash(hash, "wrong-password"))
	assert.Error(t, CompareHash(hash, ""))
	assert.Error(t, CompareHash("not a bcrypt hash", "correct-password"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := GetHash("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	// bcrypt солит каждый хэш заново
	assert.NotEqual(t, first, second)
}

func TestGetHash_InvalidCost(t *testing.T) {
	_, err := GetHash("password123", bcrypt.MaxCost+1)
	assert.Error(t, err)
}
