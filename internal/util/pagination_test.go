package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 5, ParseIntDefault("", 5))
	require.Equal(t, 3, ParseIntDefault("3", 5))
	require.Equal(t, 5, ParseIntDefault("abc", 5))
	require.Equal(t, -2, ParseIntDefault("-2", 5))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		from, lim  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 10, 20, 10},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative size uses default", 1, -1, 0, DefaultPageSize},
		{"oversized size uses default", 2, 500, DefaultPageSize, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, limit := Calculate(tt.page, tt.size)
			require.Equal(t, tt.from, from)
			require.Equal(t, tt.lim, limit)
		})
	}
}
