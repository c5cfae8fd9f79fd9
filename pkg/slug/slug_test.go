package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dresses", "dresses"},
		{"Ethnic Wear", "ethnic-wear"},
		{"Tops & Tees", "tops-and-tees"},
		{"  Café Décor! ", "cafe-decor"},
		{"Jeans -- Slim/Fit", "jeans-slim-fit"},
		{"Kadın Giyim", "kadin-giyim"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}
