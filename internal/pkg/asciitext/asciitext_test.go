package asciitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain ascii passes through", input: "Blue T-Shirt (M)", want: "Blue T-Shirt (M)"},
		{name: "accents are stripped not transliterated", input: "Café Crème", want: "Caf Crme"},
		{name: "umlauts", input: "Günstige Möbel", want: "Gnstige Mbel"},
		{name: "emoji and cjk removed", input: "Sale 🔥 限定", want: "Sale  "},
		{name: "control characters removed", input: "line\x00break\there", want: "linebreakhere"},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeOutputIsASCII(t *testing.T) {
	out := Sanitize("Größe 40 – schwarz €")
	for _, r := range out {
		assert.LessOrEqual(t, r, rune(0x7E))
		assert.GreaterOrEqual(t, r, rune(0x20))
	}
}
