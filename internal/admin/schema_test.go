package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingEnumValues(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		wanted   []string
		expected []string
	}{
		{
			name:     "all missing",
			existing: nil,
			wanted:   StatusValues,
			expected: []string{"pending", "published", "rejected", "draft"},
		},
		{
			name:     "partially present",
			existing: []string{"published", "draft"},
			wanted:   StatusValues,
			expected: []string{"pending", "rejected"},
		},
		{
			name:     "nothing missing",
			existing: []string{"pending", "published", "rejected", "draft"},
			wanted:   StatusValues,
			expected: nil,
		},
		{
			name:     "extra existing values ignored",
			existing: []string{"archived", "published"},
			wanted:   []string{"published", "pending"},
			expected: []string{"pending"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MissingEnumValues(tt.existing, tt.wanted))
		})
	}
}
