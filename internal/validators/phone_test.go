package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("+233123456789"))
	assert.True(t, IsPhoneValid("0241234567"))

	assert.False(t, IsPhoneValid(""))
	assert.False(t, IsPhoneValid("12345678"))       // curto demais
	assert.False(t, IsPhoneValid("+233 123456789")) // espaço
	assert.False(t, IsPhoneValid("abc123456789"))
}
