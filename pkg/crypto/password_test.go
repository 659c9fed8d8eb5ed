package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret@1234")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret@1234", hash)

	assert.True(t, CheckPassword("Secret@1234", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("Secret@1234", "not-a-bcrypt-hash"))
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, ch := range otp {
			assert.True(t, ch >= '0' && ch <= '9')
		}
		seen[otp] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat every time")
}

func TestInitialPassword(t *testing.T) {
	assert.Equal(t, "Asha@9876", InitialPassword("Asha Traders", "9876543210"))
	assert.Equal(t, "Ravi@8000", InitialPassword("Ravi", "8000123456"))
	assert.Equal(t, "User@9876", InitialPassword("", "9876543210"))
	assert.Equal(t, "Asha@0000", InitialPassword("Asha", "98"))
}
