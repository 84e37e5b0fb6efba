// Package ui implements the terminal interface: a track list over the
// playback controller, a player bar, and prompts for search and
// downloads.
package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowling220/YTune/internal/config"
	"github.com/bowling220/YTune/internal/download"
	"github.com/bowling220/YTune/internal/errmsg"
	"github.com/bowling220/YTune/internal/icons"
	"github.com/bowling220/YTune/internal/library"
	"github.com/bowling220/YTune/internal/playback"
)

// inputMode tracks which prompt owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputDownload
	inputPlaylist
)

// browseMode selects which list the main panel shows.
type browseMode int

const (
	browseTracks browseMode = iota
	browsePlaylists
)

// Model is the root bubbletea model.
type Model struct {
	controller *playback.Controller
	lib        *library.Library
	downloader *download.Downloader
	cfg        *config.Config
	sub        *playback.Subscription
	logger     *log.Logger

	tracks   []library.Track // currently displayed (possibly filtered)
	all      []library.Track
	cursor   int
	offset   int // first visible row
	filter   string
	playing  *playback.Track
	position string

	browse    browseMode
	playlists []library.Playlist
	plCursor  int
	plOffset  int

	input     textinput.Model
	inputMode inputMode

	width, height int
	status        string
	statusID      int
	scanStatus    string
	scanCh        chan library.ScanProgress
	downloadCh    chan download.Progress
	downloading   bool
	icons         icons.Set

	quitting bool
}

// New creates the root model. The controller, library and downloader
// are owned by the caller.
func New(controller *playback.Controller, lib *library.Library, dl *download.Downloader, cfg *config.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	input := textinput.New()
	input.CharLimit = 256

	return &Model{
		controller: controller,
		lib:        lib,
		downloader: dl,
		cfg:        cfg,
		sub:        controller.Subscribe(),
		logger:     logger,
		input:      input,
		icons:      icons.For(cfg.Icons),
	}
}

// Init starts the event listeners and the refresh tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTracks(),
		m.startScan(),
		listenPlayback(m.sub),
		tick(),
	)
}

// loadTracks reloads the track list from the library.
func (m *Model) loadTracks() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.lib.AllTracks()
		return tracksLoadedMsg{tracks: tracks, err: err}
	}
}

// loadPlaylists reloads the playlist list from the library.
func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.lib.Playlists()
		return playlistsLoadedMsg{playlists: playlists, err: err}
	}
}

// playPlaylist loads the playlist into the queue and starts it from
// the top.
func (m *Model) playPlaylist(p library.Playlist) tea.Cmd {
	ids, err := m.lib.PlaylistTrackIDs(p.ID)
	if err != nil {
		return m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistLoad, p.Name, err))
	}
	if len(ids) == 0 {
		return m.setStatus(fmt.Sprintf("playlist %s is empty", p.Name))
	}
	m.controller.LoadQueue(ids, m.controller.Mode(), 0)
	m.browse = browseTracks
	return nil
}

// addTrackToPlaylist appends the track to the named playlist, creating
// the playlist on first use. Names match case-insensitively.
func (m *Model) addTrackToPlaylist(name string, trackID int64) tea.Cmd {
	playlists, err := m.lib.Playlists()
	if err != nil {
		return m.setStatus(errmsg.Format(errmsg.OpPlaylistAdd, err))
	}

	var id int64
	for _, p := range playlists {
		if strings.EqualFold(p.Name, name) {
			id = p.ID
			name = p.Name
			break
		}
	}
	if id == 0 {
		if id, err = m.lib.CreatePlaylist(name); err != nil {
			return m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistAdd, name, err))
		}
	}

	if err := m.lib.AddToPlaylist(id, trackID); err != nil {
		return m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistAdd, name, err))
	}
	return m.setStatus(fmt.Sprintf("added to %s", name))
}

// startScan kicks off a library scan of the configured sources.
func (m *Model) startScan() tea.Cmd {
	if len(m.cfg.LibrarySources) == 0 {
		return nil
	}
	progress := make(chan library.ScanProgress, 16)
	m.scanCh = progress
	run := func() tea.Msg {
		if _, err := m.lib.Scan(m.cfg.LibrarySources, progress); err != nil {
			return scanErrMsg{err: err}
		}
		return nil
	}
	return tea.Batch(run, listenScan(progress))
}

// startDownload runs the downloader for the given URL.
func (m *Model) startDownload(url string) tea.Cmd {
	m.downloading = true
	progress := make(chan download.Progress, 16)
	m.downloadCh = progress

	run := func() tea.Msg {
		defer close(progress)
		result, err := m.downloader.Download(context.Background(), url, func(p download.Progress) {
			select {
			case progress <- p:
			default:
			}
		})
		if err != nil {
			return downloadErrMsg{err: err}
		}
		return downloadDoneMsg{result: result}
	}
	return tea.Batch(run, listenDownload(progress))
}

// visibleIDs returns the IDs of the displayed tracks in display order.
func (m *Model) visibleIDs() []int64 {
	ids := make([]int64, len(m.tracks))
	for i, t := range m.tracks {
		ids[i] = t.ID
	}
	return ids
}

// applyFilter filters the track list, keeping the cursor in range.
func (m *Model) applyFilter(query string) {
	m.filter = query
	if query == "" {
		m.tracks = m.all
	} else {
		filtered, err := m.lib.SearchTracks(query)
		if err != nil {
			m.logger.Printf("ui: search: %v", err)
			return
		}
		m.tracks = filtered
	}
	if m.cursor >= len(m.tracks) {
		m.cursor = max(0, len(m.tracks)-1)
	}
	m.offset = 0
}
