package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy("true"))
	assert.True(t, Truthy("1"))
	assert.True(t, Truthy("yes"))
	assert.True(t, Truthy(" TRUE "))

	assert.False(t, Truthy(""))
	assert.False(t, Truthy("0"))
	assert.False(t, Truthy("no"))
	assert.False(t, Truthy("false"))
}
