//go:build !portaudio

package playback

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays sources on the default audio device via oto. One context
// serves the whole process, so the sink is created with a fixed format
// and every source must match it.
type OtoSink struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	channels   int
	closed     bool
}

// NewSink opens the default audio device for the given format.
func NewSink(sampleRate, channels int) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready
	return &OtoSink{ctx: ctx, sampleRate: sampleRate, channels: channels}, nil
}

type otoVoice struct {
	player *oto.Player
}

func (v *otoVoice) Stop() {
	v.player.Close()
}

// sourceReader adapts a Source to the io.Reader oto pulls from. Decoder
// already implements io.Reader and is used directly.
type sourceReader struct {
	src Source
}

func (r *sourceReader) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		bits := math.Float32bits(r.src.Next())
		p[n] = byte(bits)
		p[n+1] = byte(bits >> 8)
		p[n+2] = byte(bits >> 16)
		p[n+3] = byte(bits >> 24)
		n += 4
	}
	return n, nil
}

// Play starts the source on a new device player.
func (s *OtoSink) Play(src Source) (Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.New("sink is closed")
	}
	if src.SampleRate() != s.sampleRate || src.Channels() != s.channels {
		return nil, fmt.Errorf("source format %d Hz/%d ch does not match sink %d Hz/%d ch",
			src.SampleRate(), src.Channels(), s.sampleRate, s.channels)
	}

	var reader io.Reader
	if r, ok := src.(io.Reader); ok {
		reader = r
	} else {
		reader = &sourceReader{src: src}
	}
	player := s.ctx.NewPlayer(reader)
	player.Play()
	return &otoVoice{player: player}, nil
}

// Close marks the sink closed. The oto context itself has no Close; it
// lives for the rest of the process.
func (s *OtoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
