// Package icons provides glyph sets for the terminal UI, selectable
// in config for terminals without nerd fonts.
package icons

// Style selects which glyph set to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Set holds the glyphs used by the player bar and track list.
type Set struct {
	Playing    string
	Paused     string
	Stopped    string
	Sequential string
	RepeatOne  string
	RepeatAll  string
	Shuffle    string
	Volume     string
}

var (
	nerdSet = Set{
		Playing:    "", // nf-fa-play
		Paused:     "", // nf-fa-pause
		Stopped:    "", // nf-fa-stop
		Sequential: "", // nf-fa-long_arrow_right
		RepeatOne:  "\U000f0458", // nf-md-repeat_once
		RepeatAll:  "\U000f0456", // nf-md-repeat
		Shuffle:    "\U000f049f", // nf-md-shuffle
		Volume:     "", // nf-fa-volume_up
	}

	unicodeSet = Set{
		Playing:    "▶",
		Paused:     "⏸",
		Stopped:    "■",
		Sequential: "→",
		RepeatOne:  "🔂",
		RepeatAll:  "🔁",
		Shuffle:    "🔀",
		Volume:     "🔊",
	}

	noneSet = Set{
		Playing:    ">",
		Paused:     "||",
		Stopped:    "[]",
		Sequential: "seq",
		RepeatOne:  "rep1",
		RepeatAll:  "rep",
		Shuffle:    "shuf",
		Volume:     "vol",
	}
)

// For returns the glyph set for the given style name. Unknown styles
// fall back to plain unicode.
func For(style string) Set {
	switch Style(style) {
	case StyleNerd:
		return nerdSet
	case StyleNone:
		return noneSet
	default:
		return unicodeSet
	}
}
