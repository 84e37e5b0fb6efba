// Package download fetches audio from URLs via yt-dlp and files the
// result into the library.
package download

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bowling220/YTune/internal/library"
	"github.com/bowling220/YTune/internal/tags"
)

// Progress reports downloader status to the UI.
type Progress struct {
	Phase   string  // "fetching", "downloading", "converting", "tagging"
	Percent float64 // only meaningful while downloading
}

// Result describes a completed download.
type Result struct {
	TrackID int64
	Path    string
	Title   string
	Artist  string
}

// Downloader runs yt-dlp and imports the downloaded file.
type Downloader struct {
	dir    string
	binary string // explicit binary path, may be empty
	lib    *library.Library
	logger *log.Logger
}

// New creates a downloader writing into dir. binary overrides the PATH
// lookup when non-empty.
func New(dir, binary string, lib *library.Library, logger *log.Logger) *Downloader {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Downloader{dir: dir, binary: binary, lib: lib, logger: logger}
}

// IsURL returns true if the argument looks like a URL.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// progressRe matches yt-dlp download progress lines like
// "[download]  42.3% of 3.4MiB at ...".
var progressRe = regexp.MustCompile(`\[download\]\s+([0-9.]+)%`)

// Download fetches the URL as MP3, tags it, and adds it to the library.
// onProgress is called from the downloading goroutine; it may be nil.
func (d *Downloader) Download(ctx context.Context, url string, onProgress func(Progress)) (*Result, error) {
	bin, err := d.lookupBinary()
	if err != nil {
		return nil, err
	}

	report := func(p Progress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	report(Progress{Phase: "fetching"})
	title, uploader := d.fetchMetadata(ctx, bin, url)

	artist, trackTitle := splitTitle(title, uploader)
	filename := sanitizeFilename(artist, trackTitle) + ".mp3"
	destPath := filepath.Join(d.dir, filename)

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	// yt-dlp replaces the extension itself, hand it the stem.
	outTemplate := strings.TrimSuffix(destPath, ".mp3") + ".%(ext)s"
	cmd := exec.CommandContext(ctx, bin,
		"-x", "--audio-format", "mp3",
		"--no-playlist", "--force-overwrite",
		"-o", outTemplate, url)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("set up %s: %w", filepath.Base(bin), err)
	}
	cmd.Stdout = cmd.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", filepath.Base(bin), err)
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "ExtractAudio"):
			report(Progress{Phase: "converting", Percent: 100})
		case strings.Contains(line, "[download]"):
			if m := progressRe.FindStringSubmatch(line); m != nil {
				pct, _ := strconv.ParseFloat(m[1], 64)
				report(Progress{Phase: "downloading", Percent: pct})
			}
		}
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	if _, err := os.Stat(destPath); err != nil {
		return nil, fmt.Errorf("download produced no file at %s", destPath)
	}

	report(Progress{Phase: "tagging", Percent: 100})
	tag := &tags.Tag{Path: destPath, Title: trackTitle, Artist: artist}
	if err := tags.Write(destPath, tag); err != nil {
		d.logger.Printf("download: tag %s: %v", destPath, err)
	}

	result := &Result{Path: destPath, Title: trackTitle, Artist: artist}
	if d.lib != nil {
		info, err := tags.ReadWithAudio(destPath)
		if err != nil {
			return nil, fmt.Errorf("read downloaded file: %w", err)
		}
		fi, err := os.Stat(destPath)
		if err != nil {
			return nil, err
		}
		id, _, err := d.lib.AddTrack(info, fi.ModTime().Unix())
		if err != nil {
			return nil, fmt.Errorf("add downloaded track: %w", err)
		}
		result.TrackID = id
	}
	return result, nil
}

// lookupBinary finds the downloader binary: the configured path first,
// then yt-dlp and youtube-dl on PATH.
func (d *Downloader) lookupBinary() (string, error) {
	if d.binary != "" {
		if _, err := os.Stat(d.binary); err != nil {
			return "", fmt.Errorf("configured downloader %s: %w", d.binary, err)
		}
		return d.binary, nil
	}
	for _, name := range []string{"yt-dlp", "youtube-dl"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("yt-dlp not found; install it with your package manager or pip")
}

// fetchMetadata asks yt-dlp for title and uploader without downloading.
// Failures are tolerated, the URL still downloads with a fallback name.
func (d *Downloader) fetchMetadata(ctx context.Context, bin, url string) (title, uploader string) {
	cmd := exec.CommandContext(ctx, bin,
		"--skip-download", "--no-playlist",
		"--print", "title", "--print", "uploader", url)
	out, err := cmd.Output()
	if err != nil {
		d.logger.Printf("download: metadata fetch failed: %v", err)
		return "", ""
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) > 0 {
		title = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		uploader = strings.TrimSpace(lines[1])
	}
	return title, uploader
}

// splitTitle derives artist and track title from a video title like
// "Artist - Title", falling back to the uploader as artist.
func splitTitle(title, uploader string) (artist, trackTitle string) {
	if title == "" {
		return uploader, "Unknown Title"
	}
	if before, after, found := strings.Cut(title, " - "); found {
		artist = strings.TrimSpace(before)
		trackTitle = strings.TrimSpace(after)
		if artist != "" && trackTitle != "" {
			return artist, trackTitle
		}
	}
	return uploader, strings.TrimSpace(title)
}

// sanitizeFilename builds "Artist - Title" with characters unsafe for
// file names replaced.
func sanitizeFilename(artist, title string) string {
	name := title
	if artist != "" {
		name = artist + " - " + title
	}
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		out = "download"
	}
	return out
}
