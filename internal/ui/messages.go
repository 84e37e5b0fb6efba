package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowling220/YTune/internal/download"
	"github.com/bowling220/YTune/internal/library"
	"github.com/bowling220/YTune/internal/playback"
)

// tickMsg drives the position display refresh.
type tickMsg time.Time

// Playback events forwarded into the bubbletea loop.
type (
	stateChangedMsg playback.StateChange
	trackChangedMsg playback.TrackChange
	queueChangedMsg playback.QueueChange
	modeChangedMsg  playback.ModeChange
	playbackErrMsg  playback.ErrorEvent
)

// Library scan messages.
type (
	scanProgressMsg library.ScanProgress
	scanDoneMsg     struct{ stats *library.ScanStats }
	scanErrMsg      struct{ err error }

	tracksLoadedMsg struct {
		tracks []library.Track
		err    error
	}

	playlistsLoadedMsg struct {
		playlists []library.Playlist
		err       error
	}
)

// Download messages.
type (
	downloadProgressMsg download.Progress
	downloadDoneMsg     struct{ result *download.Result }
	downloadErrMsg      struct{ err error }
)

// statusClearMsg clears a transient status line.
type statusClearMsg struct{ id int }

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenPlayback waits for the next playback event on the subscription.
func listenPlayback(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.Done:
			return nil
		case e, ok := <-sub.StateChanged:
			if !ok {
				return nil
			}
			return stateChangedMsg(e)
		case e, ok := <-sub.TrackChanged:
			if !ok {
				return nil
			}
			return trackChangedMsg(e)
		case e, ok := <-sub.QueueChanged:
			if !ok {
				return nil
			}
			return queueChangedMsg(e)
		case e, ok := <-sub.ModeChanged:
			if !ok {
				return nil
			}
			return modeChangedMsg(e)
		case e, ok := <-sub.Error:
			if !ok {
				return nil
			}
			return playbackErrMsg(e)
		}
	}
}

// listenDownload forwards downloader progress into the update loop.
func listenDownload(progress <-chan download.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return nil
		}
		return downloadProgressMsg(p)
	}
}

// listenScan forwards scanner progress into the update loop.
func listenScan(progress <-chan library.ScanProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return nil
		}
		if p.Phase == "done" {
			return scanDoneMsg{stats: p.Stats}
		}
		return scanProgressMsg(p)
	}
}
