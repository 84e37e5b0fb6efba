package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bowling220/YTune/internal/tags"
)

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.mp3", "b.flac", "cover.jpg", "sub/c.ogg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, discovered := discoverFiles([]string{dir})

	if len(files) != 3 {
		t.Errorf("discovered %d files, want 3", len(files))
	}
	if len(discovered) != 3 {
		t.Errorf("discovered set has %d entries, want 3", len(discovered))
	}
	if _, ok := discovered[filepath.Join(dir, "cover.jpg")]; ok {
		t.Error("non-music file should not be discovered")
	}
}

func TestScan_RemovesMissingFiles(t *testing.T) {
	l := openTestLibrary(t)
	dir := t.TempDir()

	gone := filepath.Join(dir, "gone.mp3")
	if _, _, err := l.AddTrack(&tags.FileInfo{
		Tag:      tags.Tag{Path: gone, Title: "Gone", Artist: "X"},
		Duration: time.Minute,
	}, 1000); err != nil {
		t.Fatalf("add track: %v", err)
	}

	stats, err := l.Scan([]string{dir}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if stats.Removed != 1 {
		t.Errorf("Removed = %d, want 1", stats.Removed)
	}

	count, _ := l.TrackCount()
	if count != 0 {
		t.Errorf("TrackCount = %d, want 0", count)
	}
}

func TestScan_CountsUnreadableFiles(t *testing.T) {
	l := openTestLibrary(t)
	dir := t.TempDir()

	// Not a real MP3; metadata reading fails and the file is skipped.
	if err := os.WriteFile(filepath.Join(dir, "bad.mp3"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	progress := make(chan ScanProgress, 16)
	done := make(chan struct{})
	var phases []string
	go func() {
		defer close(done)
		for p := range progress {
			phases = append(phases, p.Phase)
		}
	}()

	stats, err := l.Scan([]string{dir}, progress)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	<-done

	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.Added != 0 {
		t.Errorf("Added = %d, want 0", stats.Added)
	}
	if len(phases) == 0 || phases[len(phases)-1] != "done" {
		t.Errorf("phases = %v, want final phase done", phases)
	}
}
