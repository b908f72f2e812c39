package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRFC3339NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	stamp := time.Date(2026, time.March, 1, 14, 30, 0, 0, loc)
	assert.Equal(t, "2026-03-01T12:30:00Z", FormatRFC3339(stamp))
}
