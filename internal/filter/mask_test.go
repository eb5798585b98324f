package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		tokens []string
		want   string
	}{
		{
			name:   "no tokens is identity",
			text:   "hello there",
			tokens: nil,
			want:   "hello there",
		},
		{
			name:   "whole word same length",
			text:   "you are a badword",
			tokens: []string{"badword"},
			want:   "you are a *******",
		},
		{
			name:   "case insensitive",
			text:   "you are a BadWord",
			tokens: []string{"badword"},
			want:   "you are a *******",
		},
		{
			name:   "substring inside a word untouched",
			text:   "the classic class",
			tokens: []string{"ass"},
			want:   "the classic class",
		},
		{
			name:   "word at start and end",
			text:   "damn it all damn",
			tokens: []string{"damn"},
			want:   "**** it all ****",
		},
		{
			name:   "multiple tokens",
			text:   "idiot says a badword",
			tokens: []string{"badword", "idiot"},
			want:   "***** says a *******",
		},
		{
			name:   "token adjacent to punctuation",
			text:   "badword! really, badword.",
			tokens: []string{"badword"},
			want:   "*******! really, *******.",
		},
		{
			name:   "arabic token",
			text:   "انت غبي جدا",
			tokens: []string{"غبي"},
			want:   "انت *** جدا",
		},
		{
			name:   "token absent from text",
			text:   "perfectly fine message",
			tokens: []string{"badword"},
			want:   "perfectly fine message",
		},
		{
			name:   "empty token ignored",
			text:   "hello there",
			tokens: []string{""},
			want:   "hello there",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MaskTokens(tt.text, tt.tokens)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len([]rune(tt.text)), len([]rune(got)), "masking must preserve length")
		})
	}
}

func TestMaskTokens_Idempotent(t *testing.T) {
	t.Parallel()

	tokens := []string{"badword", "غبي"}
	once := MaskTokens("a badword and غبي too", tokens)
	twice := MaskTokens(once, tokens)
	assert.Equal(t, once, twice)
}
