package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkcargopass/cargopass/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"  Alice@Example.COM ", "alice@example.com"},
		{"john..doe@example.com", "john.doe@example.com"},
		{".lead@example.com", "lead@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"a@b@c", "a@b@c"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a****@example.com", sanitizer.MaskEmail("alice@example.com"))
	assert.Equal(t, "b@example.com", sanitizer.MaskEmail("b@example.com"))
	assert.Equal(t, "invalid", sanitizer.MaskEmail("invalid"))
	assert.Equal(t, "@example.com", sanitizer.MaskEmail("@example.com"))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Alice Smith", sanitizer.SingleLine("  Alice\n\t Smith\x00 "))
	assert.Empty(t, sanitizer.SingleLine(" \r\n "))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 10))
	assert.Empty(t, sanitizer.MaxLength("hi", 0))
}
