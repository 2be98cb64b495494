package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter_FilterText(t *testing.T) {
	filter := newContentFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple replacement", "What the hell is going on?", "What the heck is going on?"},
		{"multiple words", "This is damn crap!", "This is dang crud!"},
		{"uppercase", "DAMN that's annoying!", "DANG that's annoying!"},
		{"title case", "Hell no, that's not right", "Heck no, that's not right"},
		{"word boundaries", "I love classical music", "I love classical music"},
		{"longest match wins", "That is bullshit.", "That is baloney."},
		{"no profanity", "A perfectly clean sentence.", "A perfectly clean sentence."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.FilterText(tt.input))
		})
	}
}

func TestShouldFilterContent(t *testing.T) {
	for _, rating := range []string{"G", "pg", "PG13", " PG-13 "} {
		assert.True(t, shouldFilterContent(rating), rating)
	}
	for _, rating := range []string{"R", "NC17", ""} {
		assert.False(t, shouldFilterContent(rating), rating)
	}
}
