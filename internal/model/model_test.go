package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"grains", "Grains"},
		{"GRAINS", "Grains"},
		{"  vegetables  ", "Vegetables"},
		{"", DefaultCategory},
		{"   ", DefaultCategory},
		{"f", "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "seller", NormalizeRole(" Seller "))
	assert.Equal(t, "buyer", NormalizeRole("BUYER"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("buyer"))
	assert.True(t, IsValidRole("Seller"))
	assert.True(t, IsValidRole("BOTH"))
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}
