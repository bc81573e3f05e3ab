package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arzex-lab/exchange/internal/utils"
)

func TestDecimalSqrt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"perfect square", "40000", "200"},
		{"unit", "1", "1"},
		{"irrational root rounded to ledger precision", "2", "1.41421356"},
		{"fractional", "0.25", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.DecimalSqrt(decimal.RequireFromString(tt.input))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"sqrt(%s) = %s, want %s", tt.input, got, tt.expected)
		})
	}
}

func TestDecimalSqrtNonPositive(t *testing.T) {
	assert.True(t, utils.DecimalSqrt(decimal.Zero).IsZero())
	assert.True(t, utils.DecimalSqrt(decimal.NewFromInt(-4)).IsZero())
}
