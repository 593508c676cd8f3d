package playback

import "time"

// OneShotLifetime tracks elapsed play time for a one-shot sound. The
// control context ticks it once per frame; when Tick reports expiry the
// owning playback is stopped at the next block boundary. The render
// context receives no signal; it is simply detached.
type OneShotLifetime struct {
	Duration time.Duration
	Elapsed  time.Duration
}

// NewOneShotLifetime starts a lifetime at zero elapsed.
func NewOneShotLifetime(d time.Duration) *OneShotLifetime {
	return &OneShotLifetime{Duration: d}
}

// Tick adds the frame delta and reports whether the lifetime has expired.
func (l *OneShotLifetime) Tick(dt time.Duration) bool {
	l.Elapsed += dt
	return l.Elapsed >= l.Duration
}

// Expired reports whether the lifetime has run out without advancing it.
func (l *OneShotLifetime) Expired() bool {
	return l.Elapsed >= l.Duration
}
