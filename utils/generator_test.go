package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{6, 8, 12} {
		code := GenerateCode(length)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(letterBytes, r), "unexpected character %q in %s", r, code)
		}
	}
}

func TestGenerateCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateCode(8)] = true
	}
	assert.Greater(t, len(seen), 1)
}
