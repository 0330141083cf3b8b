package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNationalID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "formatted", input: "123.456.789-01", expected: "12345678901"},
		{name: "bare digits", input: "12345678901", expected: "12345678901"},
		{name: "only separators", input: ".-.-", expected: ""},
		{name: "other characters kept", input: "12 34/5", expected: "12 34/5"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeNationalID(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, NormalizeNationalID(got), "normalization must be idempotent")
			assert.NotContains(t, got, ".")
			assert.NotContains(t, got, "-")
		})
	}
}
