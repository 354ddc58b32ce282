package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"float truncates", 193.24, 193, true},
		{"negative float", -2.9, -2, true},
		{"json number int", json.Number("42"), 42, true},
		{"json number float", json.Number("63.16"), 63, true},
		{"numeric string", " 12 ", 12, true},
		{"text", "abc", 0, false},
		{"nil", nil, 0, false},
		{"map", map[string]any{"likes": 3}, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"Inf", math.Inf(1), 0, false},
		{"float above int range", 1e300, 0, false},
		{"float below int range", -1e300, 0, false},
		{"json number above int range", json.Number("1e300"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback int
		want     int
		wantErr  bool
	}{
		{"empty uses fallback", "", 10, 10, false},
		{"zero uses fallback", "0", 10, 10, false},
		{"zero fallback", "0", 0, 0, false},
		{"explicit", "25", 10, 25, false},
		{"whitespace", " 5 ", 0, 5, false},
		{"negative", "-1", 10, 0, true},
		{"text", "ten", 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.raw, tt.fallback)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
