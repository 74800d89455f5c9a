package cs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardEncoding(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{32, "space"},
		{65, "A"},
		{97, "a"},
		{126, "asciitilde"},
		{194, "acute"},
		{200, "dieresis"},
		{225, "AE"},
		{251, "germandbls"},
		{0, ".notdef"},
		{127, ".notdef"},
		{160, ".notdef"},
		{256, ".notdef"},
		{-1, ".notdef"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, StandardEncodingName(tt.code), "code %d", tt.code)
	}
}

func TestDecrypt(t *testing.T) {
	plain := program(Type1, 0, 500, "hsbw", 100, 0, "rmoveto", "endchar")
	cipher := Encrypt(plain, DefaultLenIV)
	assert.Len(t, cipher, len(plain)+DefaultLenIV)
	assert.NotEqual(t, plain, cipher[DefaultLenIV:])
	assert.Equal(t, plain, Decrypt(cipher, DefaultLenIV))
	assert.Equal(t, plain, Decrypt(plain, -1), "lenIV -1 means no encryption")
	assert.Empty(t, Decrypt([]byte{1, 2}, DefaultLenIV))
}
