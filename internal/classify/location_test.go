package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Brooklyn, New York, United States", "NYC"},
		{"Hoboken, New Jersey", "NYC"},
		{"Palo Alto, California", "SF"},
		{"South San Francisco, California, United States", "SF"},
		{"Austin, Texas, United States", "Austin"},
		{"Seattle", "Seattle"},
		{"  Denver , Colorado ", "Denver"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLocation(tt.raw), "raw=%q", tt.raw)
	}
}
