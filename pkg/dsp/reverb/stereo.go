package reverb

import "math"

// Freeverb comb/allpass tunings in samples at 44.1kHz.
var combTuning = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var allpassTuning = [4]int{556, 441, 341, 225}

// stereoSpread offsets the right channel delays for decorrelation.
const stereoSpread = 23

const inputGain = 0.015

// Stereo is a fully-wet stereo reverb: eight parallel damped combs per
// channel into four series all-passes. The caller does its own dry/wet
// crossfade, so Stereo has no dry path.
//
// RoomSize scales the delay lengths, DecayTime sets the RT60 of the tail,
// Damping low-passes it.
type Stereo struct {
	sampleRate float64
	roomSize   float64
	decayTime  float64
	damping    float64

	combL [8]*CombFilter
	combR [8]*CombFilter

	allpassL [4]*AllPassFilter
	allpassR [4]*AllPassFilter
}

// NewStereo creates a stereo reverb. roomSize in [0,1], decayTime in
// seconds, damping in [0,1]. Delay lines are sized here; create the
// reverb before the render context starts pulling blocks.
func NewStereo(sampleRate, roomSize, decayTime, damping float64) *Stereo {
	s := &Stereo{
		sampleRate: sampleRate,
		roomSize:   math.Max(0.0, math.Min(1.0, roomSize)),
		decayTime:  math.Max(0.05, decayTime),
		damping:    math.Max(0.0, math.Min(1.0, damping)),
	}

	// Room size stretches the tank between 60% and 140% of the reference
	// tuning; sample rate scaling keeps the times constant across rates.
	scale := (0.6 + 0.8*s.roomSize) * sampleRate / 44100.0

	for i := 0; i < 8; i++ {
		delayL := int(float64(combTuning[i]) * scale)
		delayR := int(float64(combTuning[i]+stereoSpread) * scale)
		s.combL[i] = NewCombFilter(delayL)
		s.combR[i] = NewCombFilter(delayR)

		// RT60: feedback^(decayTime/delaySeconds) = 1e-3.
		s.combL[i].SetFeedback(rt60Feedback(float64(delayL)/sampleRate, s.decayTime))
		s.combR[i].SetFeedback(rt60Feedback(float64(delayR)/sampleRate, s.decayTime))
		s.combL[i].SetDamping(s.damping * 0.4)
		s.combR[i].SetDamping(s.damping * 0.4)
	}

	for i := 0; i < 4; i++ {
		s.allpassL[i] = NewAllPassFilter(int(float64(allpassTuning[i]) * scale))
		s.allpassR[i] = NewAllPassFilter(int(float64(allpassTuning[i]+stereoSpread) * scale))
	}

	return s
}

func rt60Feedback(delaySeconds, decayTime float64) float64 {
	return math.Pow(0.001, delaySeconds/decayTime)
}

// RoomSize returns the configured room size
func (s *Stereo) RoomSize() float64 { return s.roomSize }

// DecayTime returns the configured decay time in seconds
func (s *Stereo) DecayTime() float64 { return s.decayTime }

// Damping returns the configured damping
func (s *Stereo) Damping() float64 { return s.damping }

// SampleRate returns the sample rate the tank was built for
func (s *Stereo) SampleRate() float64 { return s.sampleRate }

// ProcessStereo processes one stereo frame and returns the wet signal only
func (s *Stereo) ProcessStereo(inputL, inputR float32) (outputL, outputR float32) {
	input := (inputL + inputR) * inputGain

	var outL, outR float32
	for i := 0; i < 8; i++ {
		outL += s.combL[i].Process(input)
		outR += s.combR[i].Process(input)
	}
	for i := 0; i < 4; i++ {
		outL = s.allpassL[i].Process(outL)
		outR = s.allpassR[i].Process(outR)
	}

	return outL, outR
}

// Reset clears all delay line state
func (s *Stereo) Reset() {
	for i := 0; i < 8; i++ {
		s.combL[i].Reset()
		s.combR[i].Reset()
	}
	for i := 0; i < 4; i++ {
		s.allpassL[i].Reset()
		s.allpassR[i].Reset()
	}
}
