package playback

// Source is the pull contract a sink consumes: a sample rate, a channel
// count, and one interleaved sample per call. Decoder implements it.
type Source interface {
	SampleRate() int
	Channels() int
	Next() float32
}

// Voice is one playing stream on a sink.
type Voice interface {
	Stop()
}

// Sink is an audio output backend.
type Sink interface {
	Play(src Source) (Voice, error)
	Close() error
}

// HeadlessSink renders nothing on its own; callers drive each voice by
// pulling samples. It backs tests and offline rendering.
type HeadlessSink struct{}

// NewHeadlessSink creates a sink with no audio device behind it.
func NewHeadlessSink() *HeadlessSink { return &HeadlessSink{} }

// HeadlessVoice exposes its source for synchronous pulling.
type HeadlessVoice struct {
	src     Source
	stopped bool
}

// Play registers the source and returns a voice the caller advances.
func (s *HeadlessSink) Play(src Source) (Voice, error) {
	return &HeadlessVoice{src: src}, nil
}

// Close is a no-op; there is no device to release.
func (s *HeadlessSink) Close() error { return nil }

// Stop marks the voice stopped; Pull returns silence afterward.
func (v *HeadlessVoice) Stop() { v.stopped = true }

// Stopped reports whether Stop has been called.
func (v *HeadlessVoice) Stopped() bool { return v.stopped }

// Pull renders n interleaved samples synchronously.
func (v *HeadlessVoice) Pull(n int) []float32 {
	out := make([]float32, n)
	if v.stopped {
		return out
	}
	for i := range out {
		out[i] = v.src.Next()
	}
	return out
}
