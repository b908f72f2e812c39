package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewThoughtValidator(2)

	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"necessary article", "the", true},
		{"necessary pronoun", "it", true},
		{"lone content word", "cat", false},
		{"article plus content word", "a cat", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"two function words", "of the", false},
		{"full sentence", "paris is the capital of france", true},
		{"case insensitive necessary word", "The", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.text)
			assert.Equal(t, tt.valid, result.IsValid)
			if !tt.valid {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestValidateRejectionCarriesSuggestions(t *testing.T) {
	v := NewThoughtValidator(2)

	result := v.Validate("cat")
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Suggestions)
}

func TestValidateEmptyHasReason(t *testing.T) {
	v := NewThoughtValidator(2)

	result := v.Validate("")
	assert.False(t, result.IsValid)
	assert.Equal(t, "thought is empty", result.Reason)
}

func TestValidateConnectionsAgreesWithValidate(t *testing.T) {
	v := NewThoughtValidator(2)

	sequences := [][]string{
		{},
		{"the"},
		{"cat"},
		{"a", "cat"},
		{"of", "the"},
		{"paris", "france", "capital"},
	}

	for _, seq := range sequences {
		text := ""
		for i, tok := range seq {
			if i > 0 {
				text += " "
			}
			text += tok
		}
		assert.Equal(t,
			v.Validate(text).IsValid,
			v.ValidateConnections(seq).IsValid,
			"sequence %v", seq,
		)
	}
}

func TestValidatorMinimumThreshold(t *testing.T) {
	v := NewThoughtValidator(4)

	assert.False(t, v.Validate("three word thought").IsValid)
	assert.True(t, v.Validate("a four word thought").IsValid)
	// Single necessary words stay admissible regardless of threshold.
	assert.True(t, v.Validate("the").IsValid)
}
