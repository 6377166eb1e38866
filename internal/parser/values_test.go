package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"100", "100", true},
		{"1,234.50", "1234.5", true},
		{"₹ 500", "500", true},
		{"Rs. 75", "75", true},
		{"(250.00)", "-250", true},
		{"−120", "-120", true},
		{"–45", "-45", true},
		{"+12", "12", true},
		{".5", "0.5", true},
		{"", "", false},
		{"2024-01-15", "", false},
		{"123_1", "", false},
		{"Delivered", "", false},
		{"(-5)", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got.String(), tt.in)
		}
	}
}

func TestCoerceCell(t *testing.T) {
	assert.True(t, CoerceCell("  ").IsNull())
	assert.True(t, CoerceCell("NaN").IsNull())

	id := CoerceCell("00123")
	assert.True(t, id.IsNumber())
	assert.Equal(t, "00123", id.String(), "raw text survives coercion")

	text := CoerceCell(" Delivered ")
	assert.False(t, text.IsNumber())
	assert.Equal(t, "Delivered", text.String())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-15", "15/01/2024", "15-01-2024", "15-Jan-2024", "45306"} {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	_, ok := ParseDate("not a date")
	assert.False(t, ok)
}
