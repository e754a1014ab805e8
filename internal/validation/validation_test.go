package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	valid := []string{"Password1", "aB3defgh", "Very-Long-Passphrase-99"}
	for _, p := range valid {
		assert.NoError(t, ValidatePassword(p), p)
	}

	assert.Error(t, ValidatePassword("Short1"), "too short")
	assert.Error(t, ValidatePassword("alllowercase1"), "no uppercase")
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"), "no lowercase")
	assert.Error(t, ValidatePassword("NoDigitsHere"), "no digit")
	assert.Error(t, ValidatePassword("A1"+strings.Repeat("a", 127)), "too long")
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("alice_99"))
	assert.NoError(t, ValidateUsername("Al-ice"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)), "too long")
	assert.Error(t, ValidateUsername("alice!"), "bad character")
	assert.Error(t, ValidateUsername("_alice"), "leading underscore")
	assert.Error(t, ValidateUsername("alice-"), "trailing hyphen")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.co"))

	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidateHandle(t *testing.T) {
	assert.NoError(t, ValidateHandle("alice-vlogs"))
	assert.NoError(t, ValidateHandle("channel_42"))

	assert.Error(t, ValidateHandle("ab"), "too short")
	assert.Error(t, ValidateHandle("Alice"), "uppercase")
	assert.Error(t, ValidateHandle("has space"))
	assert.Error(t, ValidateHandle(strings.Repeat("a", 31)), "too long")
}
