package parse_test

import (
	"testing"

	"go-storefront-api/internal/pkg/parse"

	"github.com/stretchr/testify/assert"
)

func TestPositiveIntOrDefault(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{" 7 ", 7},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"2.5", 1},
	}

	for _, tt := range tests {
		t.Run("raw_"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parse.OrDefault(tt.raw, parse.PositiveInt, 1))
		})
	}
}

func TestOptionalNonNegativeFloat(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := parse.Optional("19.5", parse.NonNegativeFloat)
		if assert.NotNil(t, v) {
			assert.Equal(t, 19.5, *v)
		}
	})

	t.Run("zero_is_valid", func(t *testing.T) {
		v := parse.Optional("0", parse.NonNegativeFloat)
		if assert.NotNil(t, v) {
			assert.Equal(t, 0.0, *v)
		}
	})

	for _, raw := range []string{"", "-1", "NaN", "Inf", "ten"} {
		t.Run("rejected_"+raw, func(t *testing.T) {
			assert.Nil(t, parse.Optional(raw, parse.NonNegativeFloat))
		})
	}
}

func TestOneOf(t *testing.T) {
	p := parse.OneOf("a", "b")

	assert.Equal(t, "b", parse.OrDefault("b", p, "a"))
	assert.Equal(t, "a", parse.OrDefault("zzz", p, "a"))
	assert.Equal(t, "a", parse.OrDefault("", p, "a"))
}

func TestNonEmptyAndBool(t *testing.T) {
	assert.Equal(t, "phone", parse.OrDefault("  phone ", parse.NonEmpty, ""))
	assert.Nil(t, parse.Optional("   ", parse.NonEmpty))

	assert.True(t, parse.OrDefault("true", parse.Bool, false))
	assert.True(t, parse.OrDefault("1", parse.Bool, false))
	assert.False(t, parse.OrDefault("yes-please", parse.Bool, false))
}
