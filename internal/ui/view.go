package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/bowling220/YTune/internal/playback"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	playingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// listHeight is the number of track rows that fit on screen.
func (m *Model) listHeight() int {
	// header + player bar + status line
	h := m.height - 5
	if h < 1 {
		return 1
	}
	return h
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	if m.browse == browsePlaylists {
		b.WriteString(m.viewPlaylists())
	} else {
		b.WriteString(m.viewList())
	}
	b.WriteString("\n")
	b.WriteString(m.viewPlayerBar())
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	return b.String()
}

func (m *Model) viewHeader() string {
	title := titleStyle.Render("YTune")
	count := dimStyle.Render(fmt.Sprintf("%s in library",
		humanize.Comma(int64(len(m.all)))+" tracks"))
	switch {
	case m.browse == browsePlaylists:
		count = dimStyle.Render(fmt.Sprintf("%d playlists", len(m.playlists)))
	case m.filter != "":
		count = dimStyle.Render(fmt.Sprintf("%d/%d tracks match %q",
			len(m.tracks), len(m.all), m.filter))
	}
	return title + "  " + count
}

func (m *Model) viewList() string {
	h := m.listHeight()
	if len(m.tracks) == 0 {
		empty := "library is empty"
		if m.filter != "" {
			empty = "no matches"
		}
		return dimStyle.Render(empty) + strings.Repeat("\n", h-1)
	}

	playingID := int64(0)
	if m.playing != nil {
		playingID = m.playing.ID
	}

	var rows []string
	end := min(m.offset+h, len(m.tracks))
	for i := m.offset; i < end; i++ {
		t := m.tracks[i]

		marker := "  "
		if t.ID == playingID {
			marker = m.icons.Playing + " "
		}

		duration := formatDuration(t.Duration)
		avail := m.width - len(marker) - len(duration) - 3
		line := fmt.Sprintf("%s%s %s",
			marker,
			truncate(fmt.Sprintf("%s - %s", t.Artist, t.Title), avail),
			dimStyle.Render(duration))

		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case t.ID == playingID:
			line = playingStyle.Render(line)
		}
		rows = append(rows, line)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewPlaylists() string {
	h := m.listHeight()
	if len(m.playlists) == 0 {
		return dimStyle.Render("no playlists") + strings.Repeat("\n", h-1)
	}

	var rows []string
	end := min(m.plOffset+h, len(m.playlists))
	for i := m.plOffset; i < end; i++ {
		p := m.playlists[i]
		line := fmt.Sprintf("  %s %s", p.Name,
			dimStyle.Render(fmt.Sprintf("(%d tracks)", p.TrackCount)))
		if i == m.plCursor {
			line = selectedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) viewPlayerBar() string {
	state := m.controller.State()
	icon := m.icons.Stopped
	switch state {
	case playback.StatePlaying:
		icon = m.icons.Playing
	case playback.StatePaused:
		icon = m.icons.Paused
	}

	now := "nothing playing"
	if m.playing != nil {
		now = fmt.Sprintf("%s - %s", m.playing.Artist, m.playing.Title)
	}

	right := fmt.Sprintf("%s  %s %d%%", m.modeIcon(), m.icons.Volume, m.controller.Volume())
	left := fmt.Sprintf("%s %s", icon, truncate(now, m.width-len(right)-20))
	line := left
	if m.position != "" {
		line += "  " + dimStyle.Render(m.position)
	}

	pad := m.width - lipgloss.Width(line) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	bar := ""
	if d := m.controller.Duration(); d > 0 {
		ratio := float64(m.controller.Position()) / float64(d)
		bar = barStyle.Render(progressBar(m.width, ratio)) + "\n"
	}
	return bar + line + strings.Repeat(" ", pad) + right
}

func (m *Model) viewStatusLine() string {
	if m.inputMode != inputNone {
		prompt := "/"
		switch m.inputMode {
		case inputDownload:
			prompt = "url:"
		case inputPlaylist:
			prompt = "playlist:"
		}
		return prompt + " " + m.input.View()
	}
	if m.status != "" {
		return errorStyle.Render(m.status)
	}
	if m.scanStatus != "" {
		return dimStyle.Render(m.scanStatus)
	}
	if m.browse == browsePlaylists {
		return dimStyle.Render("enter play playlist · p/esc back · q quit")
	}
	return dimStyle.Render("enter play · space pause · n/b skip · m mode · p playlists · a add to playlist · / search · d download · q quit")
}

func (m *Model) modeIcon() string {
	switch m.controller.Mode() {
	case playback.ModeRepeatOne:
		return m.icons.RepeatOne
	case playback.ModeRepeatAll:
		return m.icons.RepeatAll
	case playback.ModeShuffle:
		return m.icons.Shuffle
	default:
		return m.icons.Sequential
	}
}
