package tags

import "testing"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		path       string
		wantArtist string
		wantTitle  string
	}{
		{"/music/Daft Punk - Harder Better Faster Stronger.mp3", "Daft Punk", "Harder Better Faster Stronger"},
		{"Nirvana - Smells Like Teen Spirit.flac", "Nirvana", "Smells Like Teen Spirit"},
		{"/music/untitled.mp3", "", "untitled"},
		{"A - B - C.ogg", "A", "B - C"},
		{"Dashless-Name.mp3", "", "Dashless-Name"},
		{"Trailing - .mp3", "", "Trailing -"},
	}
	for _, tt := range tests {
		artist, title := ParseFilename(tt.path)
		if artist != tt.wantArtist || title != tt.wantTitle {
			t.Errorf("ParseFilename(%q) = (%q, %q), want (%q, %q)",
				tt.path, artist, title, tt.wantArtist, tt.wantTitle)
		}
	}
}

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.ogg", true},
		{"song.opus", false},
		{"cover.jpg", false},
		{"song.wav", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsMusicFile(tt.path); got != tt.want {
			t.Errorf("IsMusicFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTaglibTagsHelpers(t *testing.T) {
	tags := taglibTags{
		"TITLE":       {"Song"},
		"TRACKNUMBER": {"5/12"},
		"DATE":        {"1997-06-01"},
		"EMPTY":       {},
	}

	if got := tags.get("TITLE"); got != "Song" {
		t.Errorf("get(TITLE) = %q, want Song", got)
	}
	if got := tags.get("MISSING", "TITLE"); got != "Song" {
		t.Errorf("get with fallback = %q, want Song", got)
	}
	if got := tags.get("EMPTY"); got != "" {
		t.Errorf("get(EMPTY) = %q, want empty", got)
	}
	if got := tags.getInt("TRACKNUMBER"); got != 5 {
		t.Errorf("getInt(TRACKNUMBER) = %d, want 5", got)
	}
	if got := tags.getInt("MISSING"); got != 0 {
		t.Errorf("getInt(MISSING) = %d, want 0", got)
	}
}
