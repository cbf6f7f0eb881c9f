package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hero.png", "hero.png"},
		{"space", "spring sale.jpg", "spring%20sale.jpg"},
		{"folder", "home/hero.png", "home/hero.png"},
		{"nested with reserved", "2024/q1/deal #1?.png", "2024/q1/deal%20%231%3F.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapePath(tt.in))
		})
	}
}
