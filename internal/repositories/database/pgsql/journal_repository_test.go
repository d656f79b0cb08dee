package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"JM/202403/00001", "JM/202403/00001"},
		{"JM/2024_", `JM/2024\_`},
		{"50% off", `50\% off`},
		{`C:\rent`, `C:\\rent`},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.term))
		})
	}
}
