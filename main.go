package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bowling220/YTune/internal/config"
	"github.com/bowling220/YTune/internal/download"
	"github.com/bowling220/YTune/internal/errmsg"
	"github.com/bowling220/YTune/internal/library"
	"github.com/bowling220/YTune/internal/mpris"
	"github.com/bowling220/YTune/internal/notify"
	"github.com/bowling220/YTune/internal/playback"
	"github.com/bowling220/YTune/internal/player"
	"github.com/bowling220/YTune/internal/stderr"
	"github.com/bowling220/YTune/internal/ui"
)

func main() {
	// ALSA and minimp3 write noise straight to fd 2; route it into the
	// log file before any audio init.
	logger, _ := stderr.Redirect()
	defer stderr.Restore()

	if err := run(logger); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lib, err := library.Open(logger)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer lib.Close()

	engine := player.New()
	controller := playback.New(engine, lib, logger)
	defer controller.Close()

	// Bring back the queue from the last session. Playback stays
	// stopped until the user asks for it.
	if state, err := lib.LoadQueueState(); err == nil {
		controller.SetVolume(state.Volume)
		mode := playback.Mode(state.Mode)
		if mode < playback.ModeSequential || mode > playback.ModeShuffle {
			mode = playback.ModeSequential
		}
		controller.RestoreQueue(state.TrackIDs, state.OriginalIDs, state.Index, mode)
	} else {
		logger.Printf("restore queue: %v", err)
	}

	dl := download.New(cfg.Download.Dir, cfg.Download.Binary, lib, logger)

	if adapter, err := mpris.New(controller); err != nil {
		logger.Printf("mpris unavailable: %v", err)
	} else {
		defer adapter.Close()
	}

	if notifier, err := notify.New(); err != nil {
		logger.Printf("notifications unavailable: %v", err)
	} else {
		go notifyTrackChanges(notifier, controller)
	}

	m := ui.New(controller, lib, dl, cfg, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	// Capture the queue before Stop clears the position.
	state := library.QueueState{
		TrackIDs:    controller.QueueIDs(),
		OriginalIDs: controller.OriginalIDs(),
		Index:       controller.QueueIndex(),
		Mode:        int(controller.Mode()),
		Volume:      controller.Volume(),
	}
	controller.Stop()
	if err := lib.SaveQueueState(state); err != nil {
		logger.Print(errmsg.Format(errmsg.OpQueueSave, err))
	}
	return nil
}

// notifyTrackChanges mirrors track changes to desktop notifications,
// replacing the previous one instead of stacking them.
func notifyTrackChanges(n notify.Notifier, c *playback.Controller) {
	sub := c.Subscribe()
	var id uint32
	for {
		select {
		case <-sub.Done:
			return
		case e, ok := <-sub.TrackChanged:
			if !ok || e.Current == nil {
				continue
			}
			body := e.Current.Artist
			if e.Current.Album != "" && body != "" {
				body += " / " + e.Current.Album
			} else if e.Current.Album != "" {
				body = e.Current.Album
			}
			newID, err := n.Notify(notify.Notification{
				Title:      e.Current.Title,
				Body:       body,
				ReplacesID: id,
				Timeout:    3000,
				Urgency:    notify.UrgencyLow,
			})
			if err == nil && newID != 0 {
				id = newID
			}
		}
	}
}
