package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhonePolicyNormalize(t *testing.T) {
	policy := NewPhonePolicy("MY")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local format", "0123456789", "+60123456789"},
		{"local with dashes", "012-345-6789", "+60123456789"},
		{"international", "+60123456789", "+60123456789"},
		{"international no plus", "60123456789", "+60123456789"},
		{"bare subscriber", "123456789", "+60123456789"},
		{"spaces and parens", "(012) 345 6789", "+60123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhonePolicyRejectsInvalid(t *testing.T) {
	policy := NewPhonePolicy("MY")

	for _, input := range []string{
		"",
		"abc",
		"0223456789",  // not a mobile prefix
		"01534567",    // too short
		"+4412345678", // wrong country
	} {
		_, err := policy.Normalize(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.domain.my"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("jane"))
	assert.Error(t, ValidateEmail("jane@example"))
	assert.Error(t, ValidateEmail("jane @example.com"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Jane Tan"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
}
