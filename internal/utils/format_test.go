package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ao-staking/internal/models"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		expected string
		wantErr  bool
	}{
		{name: "whole token", raw: "500000000", decimals: 8, expected: "5"},
		{name: "fraction", raw: "123450000", decimals: 8, expected: "1.2345"},
		{name: "below one", raw: "50", decimals: 8, expected: "0.0000005"},
		{name: "zero", raw: "0", decimals: 8, expected: "0"},
		{name: "empty", raw: "", decimals: 8, expected: "0"},
		{name: "no decimals", raw: "42", decimals: 0, expected: "42"},
		{name: "twelve decimals", raw: "1000000000000", decimals: 12, expected: "1"},
		{name: "beyond int64", raw: "123456789012345678901234567890", decimals: 18, expected: "123456789012.34567890123456789"},
		{name: "negative", raw: "-150000000", decimals: 8, expected: "-1.5"},
		{name: "not a number", raw: "12abc", decimals: 8, wantErr: true},
		{name: "decimal input", raw: "1.5", decimals: 8, wantErr: true},
		{name: "negative denomination", raw: "1", decimals: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatUnits(tt.raw, tt.decimals)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatShort(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5", "5"},
		{"0", "0"},
		{"0.5", "0.5"},
		{"1.2345", "1.23"},
		{"999", "999"},
		{"1234.5", "1.23K"},
		{"4500000", "4.5M"},
		{"7000000000", "7B"},
		{"2500000000000", "2.5T"},
		{"-1500", "-1.5K"},
		{"999.994", "999.99"},
		{"999.999", "1K"},
		{"999999", "1M"},
		{"999999999.5", "1B"},
		{"-999999", "-1M"},
		{"999999999999999", "1000T"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatShort(tt.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	got, err := FormatAmount("123000000000", models.ProtocolDenomination)
	require.NoError(t, err)
	assert.Equal(t, "1.23K", got)

	_, err = FormatAmount("nope", models.ProtocolDenomination)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestFormatAmount_Deterministic(t *testing.T) {
	first, _ := FormatAmount("987654321", 8)
	for i := 0; i < 5; i++ {
		again, _ := FormatAmount("987654321", 8)
		assert.Equal(t, first, again)
	}
}
