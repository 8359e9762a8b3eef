package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ao-staking/internal/models"
)

func TestFirstMessageData(t *testing.T) {
	tests := []struct {
		name     string
		resp     *models.Response
		expected string
		found    bool
	}{
		{name: "nil response", resp: nil},
		{name: "no messages", resp: &models.Response{}},
		{name: "blank data", resp: &models.Response{Messages: []models.Message{{Data: "  "}}}},
		{name: "data", resp: &models.Response{Messages: []models.Message{{Data: `{"a":1}`}, {Data: "second"}}}, expected: `{"a":1}`, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, found := FirstMessageData(tt.resp)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, data)
		})
	}
}

func TestDecodeMessageData(t *testing.T) {
	var out struct {
		Timestamp int64 `json:"timestamp"`
	}

	err := DecodeMessageData(&models.Response{Messages: []models.Message{{Data: `{"timestamp":100}`}}}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.Timestamp)

	err = DecodeMessageData(&models.Response{}, &out)
	assert.ErrorIs(t, err, models.ErrMissingData)

	err = DecodeMessageData(&models.Response{Messages: []models.Message{{Data: `{"timestamp":`}}}, &out)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestTagInt(t *testing.T) {
	tags := models.Tags{
		{Name: "Denomination", Value: "8"},
		{Name: "Denomination", Value: "12"},
		{Name: "Ticker", Value: "STAKE"},
	}

	n, found, err := TagInt(tags, "Denomination")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 8, n, "first matching tag wins")

	_, found, err = TagInt(tags, "Missing")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = TagInt(tags, "Ticker")
	assert.True(t, found)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestProcessError(t *testing.T) {
	resp := &models.Response{Messages: []models.Message{{Tags: models.Tags{{Name: "Error", Value: "Nothing to claim"}}}}}

	msg, ok := ProcessError(resp)
	assert.True(t, ok)
	assert.Equal(t, "Nothing to claim", msg)

	_, ok = ProcessError(&models.Response{})
	assert.False(t, ok)
}
