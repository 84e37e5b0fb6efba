package ui

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowling220/YTune/internal/config"
	"github.com/bowling220/YTune/internal/library"
	"github.com/bowling220/YTune/internal/playback"
	"github.com/bowling220/YTune/internal/player"
	"github.com/bowling220/YTune/internal/tags"
)

// newTestModel builds a model over a temp library containing one track
// per title, each backed by a real file so playback can start.
func newTestModel(t *testing.T, titles ...string) (*Model, *library.Library) {
	t.Helper()

	dir := t.TempDir()
	logger := log.New(io.Discard, "", 0)
	lib, err := library.OpenPath(filepath.Join(dir, "library.db"), logger)
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })

	for _, title := range titles {
		path := filepath.Join(dir, title+".mp3")
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("write fixture file: %v", err)
		}
		info := &tags.FileInfo{
			Tag:      tags.Tag{Path: path, Title: title, Artist: "Artist"},
			Duration: 3 * time.Minute,
		}
		if _, _, err := lib.AddTrack(info, 1); err != nil {
			t.Fatalf("add track %q: %v", title, err)
		}
	}

	controller := playback.New(player.NewMock(), lib, logger)
	t.Cleanup(func() { _ = controller.Close() })

	return New(controller, lib, nil, &config.Config{}, logger), lib
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendMsg(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", next)
	}
	return model, cmd
}

func trackIDsByTitle(t *testing.T, lib *library.Library) map[string]int64 {
	t.Helper()
	tracks, err := lib.AllTracks()
	if err != nil {
		t.Fatalf("all tracks: %v", err)
	}
	ids := make(map[string]int64, len(tracks))
	for _, tr := range tracks {
		ids[tr.Title] = tr.ID
	}
	return ids
}

func TestPlaylistBrowse_PlaysPlaylist(t *testing.T) {
	m, lib := newTestModel(t, "one", "two", "three")
	ids := trackIDsByTitle(t, lib)

	plID, err := lib.CreatePlaylist("road trip")
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	for _, title := range []string{"one", "two"} {
		if err := lib.AddToPlaylist(plID, ids[title]); err != nil {
			t.Fatalf("add to playlist: %v", err)
		}
	}

	m, cmd := sendMsg(t, m, keyMsg("p"))
	if m.browse != browsePlaylists {
		t.Fatal("expected playlist browsing after p")
	}
	if cmd == nil {
		t.Fatal("expected a playlist load command")
	}
	m, _ = sendMsg(t, m, cmd())
	if len(m.playlists) != 1 || m.playlists[0].Name != "road trip" {
		t.Fatalf("playlists = %+v, want the one created", m.playlists)
	}

	m, _ = sendMsg(t, m, keyMsg("enter"))

	want := []int64{ids["one"], ids["two"]}
	if got := m.controller.QueueIDs(); !slices.Equal(got, want) {
		t.Errorf("QueueIDs() = %v, want %v", got, want)
	}
	if m.browse != browseTracks {
		t.Error("expected return to the track list after starting a playlist")
	}
}

func TestPlaylistBrowse_EmptyPlaylistDoesNotLoadQueue(t *testing.T) {
	m, lib := newTestModel(t, "one")

	if _, err := lib.CreatePlaylist("empty"); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	m, cmd := sendMsg(t, m, keyMsg("p"))
	m, _ = sendMsg(t, m, cmd())
	m, _ = sendMsg(t, m, keyMsg("enter"))

	if got := m.controller.QueueLen(); got != 0 {
		t.Errorf("QueueLen() = %d, want 0", got)
	}
	if m.status == "" {
		t.Error("expected a status message for an empty playlist")
	}
}

func TestAddToPlaylist_FromTrackCursor(t *testing.T) {
	m, lib := newTestModel(t, "one", "two")

	tracks, err := lib.AllTracks()
	if err != nil {
		t.Fatalf("all tracks: %v", err)
	}
	m, _ = sendMsg(t, m, tracksLoadedMsg{tracks: tracks})

	m, _ = sendMsg(t, m, keyMsg("a"))
	if m.inputMode != inputPlaylist {
		t.Fatal("expected playlist prompt after a")
	}
	m.input.SetValue("favorites")
	m, _ = sendMsg(t, m, keyMsg("enter"))

	playlists, err := lib.Playlists()
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists) != 1 || playlists[0].Name != "favorites" {
		t.Fatalf("playlists = %+v, want a single 'favorites'", playlists)
	}
	got, err := lib.PlaylistTrackIDs(playlists[0].ID)
	if err != nil {
		t.Fatalf("playlist track ids: %v", err)
	}
	if want := []int64{tracks[0].ID}; !slices.Equal(got, want) {
		t.Errorf("PlaylistTrackIDs() = %v, want %v", got, want)
	}

	// A second add with a different case reuses the same playlist.
	m, _ = sendMsg(t, m, keyMsg("j"))
	m, _ = sendMsg(t, m, keyMsg("a"))
	m.input.SetValue("Favorites")
	m, _ = sendMsg(t, m, keyMsg("enter"))

	playlists, err = lib.Playlists()
	if err != nil {
		t.Fatalf("playlists: %v", err)
	}
	if len(playlists) != 1 {
		t.Fatalf("got %d playlists after second add, want 1", len(playlists))
	}
	got, err = lib.PlaylistTrackIDs(playlists[0].ID)
	if err != nil {
		t.Fatalf("playlist track ids: %v", err)
	}
	if len(got) != 2 || got[1] != tracks[1].ID {
		t.Errorf("PlaylistTrackIDs() = %v, want both tracks in order", got)
	}
}
