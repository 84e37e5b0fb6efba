// internal/player/interface.go
package player

import "time"

// Interface defines the media engine contract for dependency injection
// and testing. Play loads a local file and begins playback; decoding and
// output happen inside the engine, off the caller's critical path.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration)
	SetVolume(level float64) // 0.0 to 1.0
	Volume() float64
	// FinishedChan signals each time a track plays to completion.
	// Stop and Play never signal it.
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
