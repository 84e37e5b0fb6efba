package library

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bowling220/YTune/internal/tags"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := OpenPath(filepath.Join(t.TempDir(), "library.db"), nil)
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func addTestTrack(t *testing.T, l *Library, path, title, artist string) int64 {
	t.Helper()
	id, _, err := l.AddTrack(&tags.FileInfo{
		Tag:      tags.Tag{Path: path, Title: title, Artist: artist, Album: "Album"},
		Duration: 3 * time.Minute,
	}, 1000)
	if err != nil {
		t.Fatalf("add track: %v", err)
	}
	return id
}

func TestAddTrack_InsertAndUpdate(t *testing.T) {
	l := openTestLibrary(t)

	id, isNew, err := l.AddTrack(&tags.FileInfo{
		Tag:      tags.Tag{Path: "/music/a.mp3", Title: "First", Artist: "X"},
		Duration: 90 * time.Second,
	}, 1000)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !isNew {
		t.Error("first AddTrack should report a new row")
	}

	id2, isNew, err := l.AddTrack(&tags.FileInfo{
		Tag:      tags.Tag{Path: "/music/a.mp3", Title: "Renamed", Artist: "X"},
		Duration: 90 * time.Second,
	}, 2000)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if isNew {
		t.Error("second AddTrack for the same path should update")
	}
	if id2 != id {
		t.Errorf("update changed ID: %d != %d", id2, id)
	}

	track, err := l.TrackByID(id)
	if err != nil {
		t.Fatalf("TrackByID: %v", err)
	}
	if track.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", track.Title)
	}
	if track.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", track.Duration)
	}

	count, err := l.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount: %v", err)
	}
	if count != 1 {
		t.Errorf("TrackCount = %d, want 1", count)
	}
}

func TestTracksByIDs_PreservesOrder(t *testing.T) {
	l := openTestLibrary(t)
	id1 := addTestTrack(t, l, "/m/1.mp3", "One", "A")
	id2 := addTestTrack(t, l, "/m/2.mp3", "Two", "B")
	id3 := addTestTrack(t, l, "/m/3.mp3", "Three", "C")

	tracks, err := l.TracksByIDs([]int64{id3, id1, 999, id2})
	if err != nil {
		t.Fatalf("TracksByIDs: %v", err)
	}

	var got []int64
	for _, tr := range tracks {
		got = append(got, tr.ID)
	}
	if want := []int64{id3, id1, id2}; !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
}

func TestSearchTracks(t *testing.T) {
	l := openTestLibrary(t)
	addTestTrack(t, l, "/m/1.mp3", "Paranoid Android", "Radiohead")
	addTestTrack(t, l, "/m/2.mp3", "Android Love", "Someone")
	addTestTrack(t, l, "/m/3.mp3", "Unrelated", "Nobody")

	tracks, err := l.SearchTracks("android")
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("got %d results, want 2", len(tracks))
	}

	// LIKE wildcards in the query must not match everything.
	tracks, err = l.SearchTracks("%")
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("wildcard query matched %d tracks, want 0", len(tracks))
	}
}

func TestPlaylists_CRUD(t *testing.T) {
	l := openTestLibrary(t)
	id1 := addTestTrack(t, l, "/m/1.mp3", "One", "A")
	id2 := addTestTrack(t, l, "/m/2.mp3", "Two", "B")

	pid, err := l.CreatePlaylist("Favorites")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if _, err := l.CreatePlaylist("Favorites"); err == nil {
		t.Error("duplicate playlist name should fail")
	}

	for _, id := range []int64{id1, id2, id1} {
		if err := l.AddToPlaylist(pid, id); err != nil {
			t.Fatalf("AddToPlaylist: %v", err)
		}
	}

	ids, err := l.PlaylistTrackIDs(pid)
	if err != nil {
		t.Fatalf("PlaylistTrackIDs: %v", err)
	}
	if want := []int64{id1, id2, id1}; !slices.Equal(ids, want) {
		t.Errorf("track IDs = %v, want %v", ids, want)
	}

	if err := l.RemoveFromPlaylist(pid, 1); err != nil {
		t.Fatalf("RemoveFromPlaylist: %v", err)
	}
	ids, _ = l.PlaylistTrackIDs(pid)
	if want := []int64{id1, id1}; !slices.Equal(ids, want) {
		t.Errorf("after removal: track IDs = %v, want %v", ids, want)
	}

	if err := l.RemoveFromPlaylist(pid, 9); err == nil {
		t.Error("removing an out-of-range position should fail")
	}

	if err := l.RenamePlaylist(pid, "Best Of"); err != nil {
		t.Fatalf("RenamePlaylist: %v", err)
	}
	playlists, err := l.Playlists()
	if err != nil {
		t.Fatalf("Playlists: %v", err)
	}
	if len(playlists) != 1 || playlists[0].Name != "Best Of" || playlists[0].TrackCount != 2 {
		t.Errorf("Playlists() = %+v, want one playlist named Best Of with 2 tracks", playlists)
	}

	if err := l.DeletePlaylist(pid); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	playlists, _ = l.Playlists()
	if len(playlists) != 0 {
		t.Errorf("got %d playlists after delete, want 0", len(playlists))
	}
}

func TestQueueState_RoundTrip(t *testing.T) {
	l := openTestLibrary(t)

	saved := QueueState{
		TrackIDs:    []int64{3, 1, 2},
		OriginalIDs: []int64{1, 2, 3},
		Index:       1,
		Mode:        3,
		Volume:      65,
	}
	if err := l.SaveQueueState(saved); err != nil {
		t.Fatalf("SaveQueueState: %v", err)
	}

	loaded, err := l.LoadQueueState()
	if err != nil {
		t.Fatalf("LoadQueueState: %v", err)
	}
	if !slices.Equal(loaded.TrackIDs, saved.TrackIDs) {
		t.Errorf("TrackIDs = %v, want %v", loaded.TrackIDs, saved.TrackIDs)
	}
	if !slices.Equal(loaded.OriginalIDs, saved.OriginalIDs) {
		t.Errorf("OriginalIDs = %v, want %v", loaded.OriginalIDs, saved.OriginalIDs)
	}
	if loaded.Index != 1 || loaded.Mode != 3 || loaded.Volume != 65 {
		t.Errorf("Index/Mode/Volume = %d/%d/%d, want 1/3/65",
			loaded.Index, loaded.Mode, loaded.Volume)
	}

	// A second save replaces the first.
	if err := l.SaveQueueState(QueueState{TrackIDs: []int64{9}, OriginalIDs: []int64{9}, Index: 0, Mode: 0, Volume: 100}); err != nil {
		t.Fatalf("SaveQueueState: %v", err)
	}
	loaded, _ = l.LoadQueueState()
	if !slices.Equal(loaded.TrackIDs, []int64{9}) {
		t.Errorf("TrackIDs = %v, want [9]", loaded.TrackIDs)
	}
}

func TestLoadQueueState_Empty(t *testing.T) {
	l := openTestLibrary(t)

	state, err := l.LoadQueueState()
	if err != nil {
		t.Fatalf("LoadQueueState: %v", err)
	}
	if state.Index != -1 || len(state.TrackIDs) != 0 {
		t.Errorf("empty state = %+v, want Index -1 and no tracks", state)
	}
	if state.Volume != 100 {
		t.Errorf("Volume = %d, want default 100", state.Volume)
	}
}

func TestOriginalPositions_Duplicates(t *testing.T) {
	queue := []int64{2, 1, 2}
	original := []int64{1, 2, 2}

	got := originalPositions(queue, original)

	// Each original slot used exactly once.
	if want := []int{1, 0, 2}; !slices.Equal(got, want) {
		t.Errorf("originalPositions = %v, want %v", got, want)
	}
}
