package download

import "testing"

func TestIsURL(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"https://youtube.com/watch?v=abc", true},
		{"http://example.com/song", true},
		{"/music/song.mp3", false},
		{"ftp://example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.arg); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		title      string
		uploader   string
		wantArtist string
		wantTitle  string
	}{
		{"Daft Punk - One More Time", "SomeChannel", "Daft Punk", "One More Time"},
		{"Just A Title", "Uploader", "Uploader", "Just A Title"},
		{"", "Uploader", "Uploader", "Unknown Title"},
		{" - Broken", "Channel", "Channel", "- Broken"},
	}
	for _, tt := range tests {
		artist, title := splitTitle(tt.title, tt.uploader)
		if artist != tt.wantArtist || title != tt.wantTitle {
			t.Errorf("splitTitle(%q, %q) = (%q, %q), want (%q, %q)",
				tt.title, tt.uploader, artist, title, tt.wantArtist, tt.wantTitle)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		artist string
		title  string
		want   string
	}{
		{"AC/DC", "Back In Black", "AC_DC - Back In Black"},
		{"Artist", `What? "Yes"`, `Artist - What_ _Yes_`},
		{"", "Solo", "Solo"},
		{"", "", "download"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.artist, tt.title); got != tt.want {
			t.Errorf("sanitizeFilename(%q, %q) = %q, want %q", tt.artist, tt.title, got, tt.want)
		}
	}
}

func TestProgressRegex(t *testing.T) {
	tests := []struct {
		line    string
		match   bool
		percent string
	}{
		{"[download]  42.3% of 3.40MiB at 1.2MiB/s", true, "42.3"},
		{"[download] 100% of 3.40MiB in 00:02", true, "100"},
		{"[download] Destination: song.webm", false, ""},
		{"[ExtractAudio] Destination: song.mp3", false, ""},
	}
	for _, tt := range tests {
		m := progressRe.FindStringSubmatch(tt.line)
		if (m != nil) != tt.match {
			t.Errorf("progressRe match on %q = %v, want %v", tt.line, m != nil, tt.match)
			continue
		}
		if m != nil && m[1] != tt.percent {
			t.Errorf("percent from %q = %q, want %q", tt.line, m[1], tt.percent)
		}
	}
}
