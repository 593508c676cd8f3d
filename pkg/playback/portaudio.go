//go:build portaudio

package playback

import (
	"errors"
	"fmt"
	"sync"

	pa "github.com/gordonklaus/portaudio"
)

// PortAudioSink plays sources through portaudio's callback API. Built
// with the portaudio tag it replaces the oto backend; useful on systems
// where portaudio has better device support.
type PortAudioSink struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	closed     bool
}

// NewSink initializes portaudio for the given format.
func NewSink(sampleRate, channels int) (*PortAudioSink, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	return &PortAudioSink{sampleRate: sampleRate, channels: channels}, nil
}

type paVoice struct {
	stream *pa.Stream
	mu     sync.Mutex
	done   bool
}

func (v *paVoice) Stop() {
	v.mu.Lock()
	v.done = true
	v.mu.Unlock()
	v.stream.Stop()
	v.stream.Close()
}

// Play opens a stream whose callback pulls interleaved samples from the
// source.
func (s *PortAudioSink) Play(src Source) (Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.New("sink is closed")
	}
	if src.SampleRate() != s.sampleRate || src.Channels() != s.channels {
		return nil, fmt.Errorf("source format %d Hz/%d ch does not match sink %d Hz/%d ch",
			src.SampleRate(), src.Channels(), s.sampleRate, s.channels)
	}

	v := &paVoice{}
	stream, err := pa.OpenDefaultStream(0, s.channels, float64(s.sampleRate), BlockSize,
		func(out []float32) {
			v.mu.Lock()
			done := v.done
			v.mu.Unlock()
			if done {
				for i := range out {
					out[i] = 0
				}
				return
			}
			for i := range out {
				out[i] = src.Next()
			}
		})
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	v.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("starting stream: %w", err)
	}
	return v, nil
}

// Close terminates portaudio.
func (s *PortAudioSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return pa.Terminate()
}
