package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToUint(t *testing.T) {
	assert.Equal(t, uint(42), StringToUint("42"))
	assert.Equal(t, uint(0), StringToUint("-1"))
	assert.Equal(t, uint(0), StringToUint("abc"))
	assert.Equal(t, uint(0), StringToUint(""))
}

func TestStringToInt(t *testing.T) {
	assert.Equal(t, 42, StringToInt("42"))
	assert.Equal(t, -7, StringToInt("-7"))
	assert.Equal(t, 0, StringToInt("x"))
}
