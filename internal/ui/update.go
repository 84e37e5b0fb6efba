package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowling220/YTune/internal/download"
	"github.com/bowling220/YTune/internal/errmsg"
	"github.com/bowling220/YTune/internal/playback"
)

const statusTimeout = 4 * time.Second

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)

	case tickMsg:
		if t := m.controller.CurrentTrack(); t != nil {
			m.position = fmt.Sprintf("%s / %s",
				formatDuration(m.controller.Position()),
				formatDuration(m.controller.Duration()))
		} else {
			m.position = ""
		}
		return m, tick()

	case stateChangedMsg:
		return m, listenPlayback(m.sub)

	case trackChangedMsg:
		m.playing = msg.Current
		return m, listenPlayback(m.sub)

	case queueChangedMsg, modeChangedMsg:
		return m, listenPlayback(m.sub)

	case playbackErrMsg:
		return m, tea.Batch(m.setStatus(msg.Message), listenPlayback(m.sub))

	case tracksLoadedMsg:
		m.all = msg.tracks
		m.applyFilter(m.filter)
		if msg.err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpLibraryLoad, msg.err))
		}
		return m, nil

	case playlistsLoadedMsg:
		if msg.err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistLoad, msg.err))
		}
		m.playlists = msg.playlists
		if m.plCursor >= len(m.playlists) {
			m.plCursor = max(0, len(m.playlists)-1)
		}
		return m, nil

	case scanProgressMsg:
		if msg.Total > 0 {
			m.scanStatus = fmt.Sprintf("scanning %d/%d", msg.Current, msg.Total)
		} else {
			m.scanStatus = "scanning..."
		}
		return m, listenScan(m.scanCh)

	case scanDoneMsg:
		m.scanStatus = ""
		cmd := m.loadTracks()
		if s := msg.stats; s != nil && (s.Added+s.Updated+s.Removed) > 0 {
			return m, tea.Batch(cmd, m.setStatus(fmt.Sprintf(
				"library: %d added, %d updated, %d removed", s.Added, s.Updated, s.Removed)))
		}
		return m, cmd

	case scanErrMsg:
		m.scanStatus = ""
		return m, m.setStatus(errmsg.Format(errmsg.OpLibraryScan, msg.err))

	case downloadProgressMsg:
		switch msg.Phase {
		case "downloading":
			m.scanStatus = fmt.Sprintf("downloading %.0f%%", msg.Percent)
		default:
			m.scanStatus = msg.Phase + "..."
		}
		return m, listenDownload(m.downloadCh)

	case downloadDoneMsg:
		m.downloading = false
		m.scanStatus = ""
		return m, tea.Batch(
			m.loadTracks(),
			m.setStatus(fmt.Sprintf("downloaded %s - %s", msg.result.Artist, msg.result.Title)),
		)

	case downloadErrMsg:
		m.downloading = false
		m.scanStatus = ""
		return m, m.setStatus(errmsg.Format(errmsg.OpDownload, msg.err))

	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// updateKeys handles keys in normal (list) mode.
func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.browse == browsePlaylists {
		return m.updatePlaylistKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "ctrl+d", "pgdown":
		m.moveCursor(m.listHeight())
	case "ctrl+u", "pgup":
		m.moveCursor(-m.listHeight())
	case "g", "home":
		m.cursor = 0
		m.offset = 0
	case "G", "end":
		m.moveCursor(len(m.tracks))

	case "enter":
		if len(m.tracks) > 0 {
			m.controller.LoadQueue(m.visibleIDs(), m.controller.Mode(), m.tracks[m.cursor].ID)
		}

	case " ":
		m.controller.Toggle()
	case "s":
		m.controller.Stop()
	case "n", ">":
		m.controller.Next()
	case "b", "<":
		m.controller.Previous()

	case "h", "left":
		m.seekBy(-5 * time.Second)
	case "l", "right":
		m.seekBy(5 * time.Second)

	case "+", "=":
		m.controller.SetVolume(m.controller.Volume() + 5)
	case "-":
		m.controller.SetVolume(m.controller.Volume() - 5)

	case "m":
		m.controller.SetMode(nextMode(m.controller.Mode()))
	case "S":
		if m.controller.Mode() == playback.ModeShuffle {
			m.controller.SetMode(playback.ModeSequential)
		} else {
			m.controller.SetMode(playback.ModeShuffle)
		}

	case "p":
		m.browse = browsePlaylists
		return m, m.loadPlaylists()

	case "a":
		if len(m.tracks) > 0 {
			m.inputMode = inputPlaylist
			m.input.Placeholder = "playlist name"
			m.input.SetValue("")
			m.input.Focus()
		}

	case "/":
		m.inputMode = inputSearch
		m.input.Placeholder = "search"
		m.input.SetValue(m.filter)
		m.input.Focus()

	case "d":
		if m.downloading {
			return m, m.setStatus("a download is already running")
		}
		m.inputMode = inputDownload
		m.input.Placeholder = "paste URL"
		m.input.SetValue("")
		m.input.Focus()

	case "r":
		return m, m.startScan()

	case "esc":
		if m.filter != "" {
			m.applyFilter("")
		}
	}
	return m, nil
}

// updateInput handles keys while a prompt is open.
func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.inputMode
		m.closeInput()
		switch mode {
		case inputSearch:
			m.applyFilter(value)
		case inputDownload:
			if !download.IsURL(value) {
				return m, m.setStatus("not a URL")
			}
			return m, m.startDownload(value)
		case inputPlaylist:
			if value != "" && len(m.tracks) > 0 {
				return m, m.addTrackToPlaylist(value, m.tracks[m.cursor].ID)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputMode == inputSearch {
		m.applyFilter(m.input.Value())
	}
	return m, cmd
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

// updatePlaylistKeys handles keys while browsing playlists.
func (m *Model) updatePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.movePlaylistCursor(1)
	case "k", "up":
		m.movePlaylistCursor(-1)
	case "g", "home":
		m.plCursor = 0
		m.plOffset = 0
	case "G", "end":
		m.movePlaylistCursor(len(m.playlists))

	case "enter":
		if len(m.playlists) > 0 {
			return m, m.playPlaylist(m.playlists[m.plCursor])
		}

	case "p", "esc":
		m.browse = browseTracks
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.tracks) {
		m.cursor = max(0, len(m.tracks)-1)
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m *Model) movePlaylistCursor(delta int) {
	m.plCursor += delta
	if m.plCursor < 0 {
		m.plCursor = 0
	}
	if m.plCursor >= len(m.playlists) {
		m.plCursor = max(0, len(m.playlists)-1)
	}
	h := m.listHeight()
	if m.plCursor < m.plOffset {
		m.plOffset = m.plCursor
	}
	if m.plCursor >= m.plOffset+h {
		m.plOffset = m.plCursor - h + 1
	}
}

func (m *Model) seekBy(delta time.Duration) {
	pos := m.controller.Position() + delta
	if pos < 0 {
		pos = 0
	}
	m.controller.SeekTo(pos)
}

// setStatus shows a transient status message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// nextMode cycles Sequential -> RepeatAll -> RepeatOne -> Shuffle.
func nextMode(mode playback.Mode) playback.Mode {
	switch mode {
	case playback.ModeSequential:
		return playback.ModeRepeatAll
	case playback.ModeRepeatAll:
		return playback.ModeRepeatOne
	case playback.ModeRepeatOne:
		return playback.ModeShuffle
	default:
		return playback.ModeSequential
	}
}
