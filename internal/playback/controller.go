// internal/playback/controller.go
package playback

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/bowling220/YTune/internal/player"
)

// restartThreshold is how far into a track Previous restarts the current
// track instead of moving back.
const restartThreshold = 3 * time.Second

// Controller owns the play queue, the current position and the playback
// mode, and drives a player.Interface from them. It is the single source
// of truth for "what is playing": the engine is only ever commanded, never
// queried to infer queue state.
//
// All operations are serialized by an internal mutex; engine end-of-media
// signals are consumed by a goroutine and handled under the same lock, so
// queue state is never observed mid-transition.
type Controller struct {
	mu sync.Mutex

	engine player.Interface
	store  TrackStore
	logger *log.Logger
	rng    *rand.Rand

	queue    []int64 // the order actually being played
	original []int64 // the order as supplied by the caller
	pos      int     // index into queue, -1 if none
	mode     Mode
	current  *Track
	volume   int // 0-100

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a controller around the given engine and track store.
// The caller owns both collaborators; the controller never closes them.
func New(engine player.Interface, store TrackStore, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	c := &Controller{
		engine: engine,
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		pos:    -1,
		mode:   ModeSequential,
		volume: 100,
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

// run consumes end-of-media signals from the engine.
func (c *Controller) run() {
	for {
		select {
		case <-c.done:
			return
		case <-c.engine.FinishedChan():
			c.handleTrackFinished()
		}
	}
}

// handleTrackFinished advances the queue after a track plays to completion.
func (c *Controller) handleTrackFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pos < 0 {
		return
	}
	prev := c.stateLocked()
	c.advanceLocked(1, true)
	c.emitStateLocked(prev)
}

// Close shuts down the controller. The engine keeps whatever state it had.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return nil
}

// LoadQueue replaces the queue with the given track IDs, sets the mode and
// starts playing. startID selects the starting track if it is present in
// the queue (pass 0 to start from the beginning). An empty id list is
// rejected and leaves all state untouched.
func (c *Controller) LoadQueue(ids []int64, mode Mode, startID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(ids) == 0 {
		c.logger.Println("playback: load queue rejected: empty track list")
		c.emitError(ErrorEvent{Message: "cannot load an empty queue"})
		return
	}

	prev := c.stateLocked()

	c.original = slices.Clone(ids)
	c.mode = mode
	if mode == ModeShuffle {
		c.queue = slices.Clone(ids)
		c.rng.Shuffle(len(c.queue), func(i, j int) {
			c.queue[i], c.queue[j] = c.queue[j], c.queue[i]
		})
	} else {
		c.queue = slices.Clone(ids)
	}

	start := 0
	if startID > 0 {
		if i := slices.Index(c.queue, startID); i >= 0 {
			start = i
		}
	}

	c.emitQueueLocked()
	c.emitMode()
	c.sweepLocked(start, 1)
	c.emitStateLocked(prev)
}

// RestoreQueue reinstates a previously saved queue without starting
// playback. A later Play picks up from the restored position.
func (c *Controller) RestoreQueue(ids, original []int64, index int, mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(ids) == 0 {
		return
	}
	c.queue = slices.Clone(ids)
	if len(original) == len(ids) {
		c.original = slices.Clone(original)
	} else {
		c.original = slices.Clone(ids)
	}
	c.mode = mode
	if index < 0 || index >= len(ids) {
		index = -1
	}
	c.pos = index

	c.emitQueueLocked()
	c.emitMode()
}

// PlayAt plays the track at the given queue index. An out-of-range index
// stops playback.
func (c *Controller) PlayAt(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	if index < 0 || index >= len(c.queue) {
		c.logger.Printf("playback: invalid queue index %d (queue size %d)", index, len(c.queue))
		c.emitError(ErrorEvent{Message: fmt.Sprintf("invalid queue index %d", index)})
		c.stopLocked()
		c.emitStateLocked(prev)
		return
	}
	c.sweepLocked(index, 1)
	c.emitStateLocked(prev)
}

// Play resumes paused playback, or starts playing at the current position
// (falling back to the start of the queue).
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	switch {
	case c.engine.State() == player.Playing:
		return
	case c.engine.State() == player.Paused:
		c.engine.Resume()
	case c.pos >= 0 && c.pos < len(c.queue):
		c.sweepLocked(c.pos, 1)
	case len(c.queue) > 0:
		c.sweepLocked(0, 1)
	default:
		c.logger.Println("playback: play requested with empty queue")
	}
	c.emitStateLocked(prev)
}

// Pause pauses playback.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	c.engine.Pause()
	c.emitStateLocked(prev)
}

// Toggle switches between playing and paused.
func (c *Controller) Toggle() {
	if c.State() == StatePlaying {
		c.Pause()
	} else {
		c.Play()
	}
}

// Stop stops playback and clears the current track. The queue itself is
// kept so playback can be restarted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	c.stopLocked()
	c.emitStateLocked(prev)
}

// Next skips to the next track per the current mode.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	c.advanceLocked(1, false)
	c.emitStateLocked(prev)
}

// Previous goes back one track, or restarts the current track when more
// than a few seconds in.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.stateLocked()
	c.advanceLocked(-1, false)
	c.emitStateLocked(prev)
}

// SetMode changes the playback mode. Entering shuffle randomizes the queue
// with the current track moved to the front; leaving it restores the
// original order. Playback state is never touched, only the queue and
// position are recomputed.
func (c *Controller) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.mode {
		return
	}

	var currentID int64
	if c.pos >= 0 && c.pos < len(c.queue) {
		currentID = c.queue[c.pos]
	}

	c.mode = mode
	if mode == ModeShuffle {
		c.queue = slices.Clone(c.original)
		c.rng.Shuffle(len(c.queue), func(i, j int) {
			c.queue[i], c.queue[j] = c.queue[j], c.queue[i]
		})
		switch {
		case currentID > 0:
			// Swap, not re-insert: exactly one other element moves.
			if i := slices.Index(c.queue, currentID); i > 0 {
				c.queue[0], c.queue[i] = c.queue[i], c.queue[0]
			}
			c.pos = 0
		case len(c.queue) > 0:
			c.pos = 0
		default:
			c.pos = -1
		}
	} else {
		c.queue = slices.Clone(c.original)
		switch {
		case currentID > 0 && slices.Contains(c.queue, currentID):
			c.pos = slices.Index(c.queue, currentID)
		case len(c.queue) > 0:
			c.pos = 0
		default:
			c.pos = -1
		}
	}

	c.emitQueueLocked()
	c.emitMode()
}

// SetVolume sets the playback volume (0-100, clamped).
func (c *Controller) SetVolume(volume int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = max(0, min(100, volume))
	c.engine.SetVolume(float64(c.volume) / 100)
}

// Volume returns the current volume (0-100).
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// advanceLocked moves the queue position one step in the given direction,
// honoring the mode's boundary rules, and plays the result. implicit marks
// advances triggered by the system (end-of-media, errors) rather than the
// user.
func (c *Controller) advanceLocked(step int, implicit bool) {
	n := len(c.queue)
	if n == 0 {
		c.stopLocked()
		return
	}

	// Going back a few seconds into a track restarts it instead.
	if step < 0 && !implicit && c.current != nil && c.engine.Position() > restartThreshold {
		c.engine.SeekTo(0)
		return
	}

	var target int
	if c.mode == ModeRepeatOne && c.pos >= 0 {
		target = c.pos
	} else {
		target = c.pos + step
		if target >= n {
			if !c.mode.Wraps() {
				// Sequential: end of the queue is terminal.
				c.stopLocked()
				return
			}
			target = 0
		}
		if target < 0 {
			if c.mode.Wraps() {
				target = n - 1
			} else {
				// Sequential: restart the first track.
				target = 0
			}
		}
	}

	c.sweepLocked(target, step)
}

// sweepLocked tries to start playback at index, skipping unplayable tracks
// in the given direction. The loop is bounded by the queue length: once
// every index has been attempted without success the controller stops and
// reports a single terminal error. A successful sweep that skipped tracks
// reports one error for the first skip.
func (c *Controller) sweepLocked(index, step int) {
	n := len(c.queue)
	if n == 0 || index < 0 || index >= n {
		c.stopLocked()
		return
	}

	var firstErr *ErrorEvent
	for attempts := 0; attempts < n; attempts++ {
		path, err := c.startTrackLocked(index)
		if err == nil {
			if firstErr != nil {
				c.emitError(*firstErr)
			}
			return
		}
		c.logger.Printf("playback: skipping track %d: %v", c.queue[index], err)
		if firstErr == nil {
			firstErr = &ErrorEvent{TrackID: c.queue[index], Path: path, Message: err.Error()}
		}

		next := index + step
		if next >= n || next < 0 {
			if !c.mode.Wraps() {
				break
			}
			if next >= n {
				next = 0
			} else {
				next = n - 1
			}
		}
		index = next
	}

	c.stopLocked()
	c.emitError(ErrorEvent{Message: "no playable track in queue"})
}

// startTrackLocked resolves and plays the track at the given index,
// returning the resolved path when one is known. On success the
// position and current track are updated and a TrackChange is emitted.
// On failure nothing is mutated.
func (c *Controller) startTrackLocked(index int) (string, error) {
	id := c.queue[index]
	t, err := c.store.Resolve(id)
	if err != nil {
		return "", fmt.Errorf("resolve track %d: %w", id, err)
	}
	if _, err := os.Stat(t.Path); err != nil {
		return t.Path, fmt.Errorf("file missing: %s", t.Path)
	}
	if err := c.engine.Play(t.Path); err != nil {
		return t.Path, fmt.Errorf("play %s: %w", t.Path, err)
	}

	prev := c.current
	c.pos = index
	c.current = t
	c.emitTrack(TrackChange{Previous: prev, Current: t, Index: index})
	return t.Path, nil
}

// stopLocked stops the engine and clears the current selection.
func (c *Controller) stopLocked() {
	c.engine.Stop()
	prev := c.current
	c.current = nil
	c.pos = -1
	if prev != nil {
		c.emitTrack(TrackChange{Previous: prev, Current: nil, Index: -1})
	}
}

// State queries

func (c *Controller) stateLocked() State {
	switch c.engine.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Position returns the playback position within the current track.
func (c *Controller) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Position()
}

// Duration returns the duration of the current track.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Duration()
}

// SeekTo seeks within the current track.
func (c *Controller) SeekTo(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.engine.SeekTo(pos)
	}
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (c *Controller) CurrentTrack() *Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	t := *c.current
	return &t
}

// Mode returns the current playback mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// QueueIDs returns a copy of the queue in play order.
func (c *Controller) QueueIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.queue)
}

// OriginalIDs returns a copy of the queue in the caller-supplied order.
func (c *Controller) OriginalIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.original)
}

// QueueIndex returns the current queue index (-1 if none).
func (c *Controller) QueueIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// QueueLen returns the number of tracks in the queue.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// QueueIsEmpty returns true if no queue is loaded.
func (c *Controller) QueueIsEmpty() bool {
	return c.QueueLen() == 0
}

// Event plumbing

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

func (c *Controller) emitStateLocked(prev State) {
	cur := c.stateLocked()
	if cur == prev {
		return
	}
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendState(StateChange{Previous: prev, Current: cur})
	}
}

func (c *Controller) emitTrack(e TrackChange) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendTrack(e)
	}
}

func (c *Controller) emitQueueLocked() {
	e := QueueChange{TrackIDs: slices.Clone(c.queue), Index: c.pos}
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendQueue(e)
	}
}

func (c *Controller) emitMode() {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendMode(ModeChange{Mode: c.mode})
	}
}

func (c *Controller) emitError(e ErrorEvent) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}
