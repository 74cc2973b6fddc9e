package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"plain", "450 zł", 450},
		{"thousands with space", "1 250 zł", 1250},
		{"thousands with nbsp", "1 250 zł", 1250},
		{"groszy comma", "1250,00 zł", 1250},
		{"groszy dot", "999.99 zł", 999},
		{"negotiable suffix", "800 zł do negocjacji", 800},
		{"free", "Za darmo", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parsePrice(tt.text))
		})
	}
}
