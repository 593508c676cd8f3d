package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/justyntemme/procaudio/pkg/debug"
)

var errSinkClosed = errors.New("engine is closed")

// PlaybackID identifies one playing instance within an Engine.
type PlaybackID int

type playing struct {
	voice    Voice
	lifetime *OneShotLifetime // nil for continuous sounds
	name     string
}

// Engine is the control-context playback manager: it spawns decoders onto
// a sink, tracks one-shot lifetimes against a per-tick time delta, and
// stops expired instances at block boundaries. All methods belong to the
// control context; the render side never sees the Engine.
type Engine struct {
	mu     sync.Mutex
	sink   Sink
	log    *debug.Logger
	active map[PlaybackID]*playing
	nextID PlaybackID
	closed bool
}

// NewEngine creates an engine on the given sink, logging to the default
// logger.
func NewEngine(sink Sink) *Engine {
	return &Engine{
		sink:   sink,
		log:    debug.Default(),
		active: make(map[PlaybackID]*playing),
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *debug.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = l
}

func (e *Engine) spawn(asset *Asset, name string, lifetime *OneShotLifetime) (PlaybackID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, errSinkClosed
	}

	voice, err := e.sink.Play(asset.Decoder())
	if err != nil {
		return 0, err
	}

	e.nextID++
	id := e.nextID
	e.active[id] = &playing{voice: voice, lifetime: lifetime, name: name}
	if lifetime != nil {
		e.log.Debug("spawned %s as #%d for %s", name, id, lifetime.Duration)
	} else {
		e.log.Debug("spawned %s as #%d (continuous)", name, id)
	}
	return id, nil
}

// Play starts a continuous playback of the asset. The caller stops it
// explicitly.
func (e *Engine) Play(asset *Asset, name string) (PlaybackID, error) {
	return e.spawn(asset, name, nil)
}

// PlayFor starts a one-shot playback that Tick will stop once the
// duration has elapsed.
func (e *Engine) PlayFor(asset *Asset, name string, d time.Duration) (PlaybackID, error) {
	return e.spawn(asset, name, NewOneShotLifetime(d))
}

// Tick advances every one-shot lifetime by dt and stops the expired ones.
// Call once per host frame.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, p := range e.active {
		if p.lifetime == nil {
			continue
		}
		if p.lifetime.Tick(dt) {
			p.voice.Stop()
			delete(e.active, id)
			e.log.Debug("despawned %s #%d after %s", p.name, id, p.lifetime.Elapsed)
		}
	}
}

// Stop ends a playback immediately. Unknown ids are ignored; the one-shot
// may already have expired.
func (e *Engine) Stop(id PlaybackID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.active[id]; ok {
		p.voice.Stop()
		delete(e.active, id)
		e.log.Debug("stopped %s #%d", p.name, id)
	}
}

// Active returns the number of currently playing instances.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Close stops every playback and closes the sink.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for id, p := range e.active {
		p.voice.Stop()
		delete(e.active, id)
	}
	return e.sink.Close()
}
