package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name       string  `validate:"required,min=1"`
	Kind       string  `validate:"required,oneof=alpha beta"`
	Confidence float64 `validate:"gte=0,lte=1"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		err := ValidateStruct(sampleInput{Name: "ok", Kind: "alpha", Confidence: 0.5})
		assert.NoError(t, err)
	})

	t.Run("joins all field errors", func(t *testing.T) {
		err := ValidateStruct(sampleInput{Kind: "gamma", Confidence: 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "kind must be one of: alpha beta")
		assert.Contains(t, err.Error(), "confidence must be at most 1")
	})

	t.Run("message text is taken verbatim", func(t *testing.T) {
		type percentInput struct {
			Rate string `validate:"required,oneof=50% 100%"`
		}
		err := ValidateStruct(percentInput{Rate: "75%"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate must be one of: 50% 100%")
	})
}
