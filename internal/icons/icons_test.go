package icons

import "testing"

func TestFor(t *testing.T) {
	tests := []struct {
		style string
		want  Set
	}{
		{"nerd", nerdSet},
		{"unicode", unicodeSet},
		{"none", noneSet},
		{"", unicodeSet},
		{"invalid", unicodeSet},
		{"NERD", unicodeSet}, // style names are case sensitive
	}
	for _, tt := range tests {
		if got := For(tt.style); got != tt.want {
			t.Errorf("For(%q) = %+v, want %+v", tt.style, got, tt.want)
		}
	}
}

func TestNoneSetIsASCII(t *testing.T) {
	for _, s := range []string{
		noneSet.Playing, noneSet.Paused, noneSet.Stopped,
		noneSet.Sequential, noneSet.RepeatOne, noneSet.RepeatAll,
		noneSet.Shuffle, noneSet.Volume,
	} {
		for _, r := range s {
			if r > 127 {
				t.Errorf("glyph %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}
