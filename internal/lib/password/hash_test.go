package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("Abcdefg1!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Abcdefg1!", hash)

	assert.NoError(t, CompareHash(hash, "Abcdefg1!"))
	assert.Error(t, CompareHash(hash, "wrongpassword"))
}

func TestGetHash_NonDeterministic(t *testing.T) {
	hash1, err := GetHash("Abcdefg1!")
	require.NoError(t, err)
	hash2, err := GetHash("Abcdefg1!")
	require.NoError(t, err)

	// bcrypt солит каждый хэш, значения не совпадают
	assert.NotEqual(t, hash1, hash2)
	assert.NoError(t, CompareHash(hash1, "Abcdefg1!"))
	assert.NoError(t, CompareHash(hash2, "Abcdefg1!"))
}

func TestCompareHash_MalformedHash(t *testing.T) {
	assert.Error(t, CompareHash("not-a-bcrypt-hash", "Abcdefg1!"))
	assert.Error(t, CompareHash("", "Abcdefg1!"))
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"валидный пароль", "Abcdefg1!", true},
		{"нет заглавных, цифр и спецсимволов", "abcdefgh", false},
		{"короче 8 символов", "Short1!", false},
		{"нет спецсимвола", "Abcdefg1", false},
		{"нет цифры", "Abcdefg!", false},
		{"нет строчных", "ABCDEFG1!", false},
		{"пустой пароль", "", false},
		{"все критерии на границе длины", "Aa1!Aa1!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateStrength(tt.password))
		})
	}
}
