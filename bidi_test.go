package yasmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yasmin-chat/yasmin"
)

func TestIsRTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"arabic", "السلام عليكم", true},
		{"latin", "hello", false},
		{"arabic with leading punctuation", "؟ما هذا", true},
		{"arabic with leading digits", "42 مرحبا", true},
		{"latin with embedded arabic", "see مرحبا", false},
		{"empty", "", false},
		{"digits only", "1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, yasmin.IsRTL(tt.in))
		})
	}
}
