package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-eventboard/internal/metrics"
)

// TestCurrency pins the abbreviation boundary: whole dollars below $1000,
// one-decimal K notation at and above it.
func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"Below threshold", 999, "$999"},
		{"At threshold", 1000, "$1.0K"},
		{"Above threshold", 1500, "$1.5K"},
		{"Large", 125000, "$125.0K"},
		{"Zero", 0, "$0"},
		{"Rounded cents", 42.6, "$43"},
		{"K rounding", 1049, "$1.0K"},
		{"K rounding up", 1050, "$1.1K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.Currency(tt.in))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "81.0%", metrics.Percent(81))
	assert.Equal(t, "66.7%", metrics.Percent(66.66))
	assert.Equal(t, "0.0%", metrics.Percent(0))
	assert.Equal(t, "100.0%", metrics.Percent(100))
}

func TestCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metrics.Count(tt.in), "Count(%d)", tt.in)
	}
}

func TestSignedDelta(t *testing.T) {
	assert.Equal(t, "+20", metrics.SignedDelta(20))
	assert.Equal(t, "+0", metrics.SignedDelta(0))
	assert.Equal(t, "-1,500", metrics.SignedDelta(-1500))
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, "+20.0%", metrics.SignedPercent(20))
	assert.Equal(t, "-13.3%", metrics.SignedPercent(-13.33))
	assert.Equal(t, "+0.0%", metrics.SignedPercent(0))
}
