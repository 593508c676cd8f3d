package reverb

import (
	"math"
	"testing"
)

func TestStereoCreation(t *testing.T) {
	r := NewStereo(44100, 0.5, 1.5, 0.3)

	if r == nil {
		t.Fatal("Failed to create reverb")
	}
	if r.RoomSize() != 0.5 {
		t.Errorf("Expected room size 0.5, got %f", r.RoomSize())
	}
	if r.DecayTime() != 1.5 {
		t.Errorf("Expected decay time 1.5, got %f", r.DecayTime())
	}
}

func TestStereoParameterClamping(t *testing.T) {
	r := NewStereo(44100, 3.0, -1.0, 2.0)

	if r.RoomSize() != 1.0 {
		t.Errorf("Room size should clamp to 1.0, got %f", r.RoomSize())
	}
	if r.DecayTime() != 0.05 {
		t.Errorf("Decay time should clamp to 0.05, got %f", r.DecayTime())
	}
	if r.Damping() != 1.0 {
		t.Errorf("Damping should clamp to 1.0, got %f", r.Damping())
	}
}

func TestStereoSilenceInSilenceOut(t *testing.T) {
	r := NewStereo(44100, 0.5, 1.0, 0.3)

	outL, outR := r.ProcessStereo(0, 0)
	if outL != 0 || outR != 0 {
		t.Error("Reverb should be silent before any input")
	}
}

func TestStereoProducesTail(t *testing.T) {
	r := NewStereo(44100, 0.5, 1.0, 0.3)

	r.ProcessStereo(1.0, 1.0)

	hasTail := false
	for i := 0; i < 44100; i++ {
		outL, outR := r.ProcessStereo(0, 0)
		if outL != 0 || outR != 0 {
			hasTail = true
		}
		if math.IsNaN(float64(outL)) || math.IsNaN(float64(outR)) {
			t.Fatalf("NaN in reverb tail at sample %d", i)
		}
	}
	if !hasTail {
		t.Error("Impulse should produce a reverb tail")
	}
}

func TestStereoTailDecays(t *testing.T) {
	r := NewStereo(44100, 0.5, 0.5, 0.3)

	r.ProcessStereo(1.0, 1.0)

	// RMS over the first vs. the fourth half-second of tail.
	rms := func(n int) float64 {
		var sum float64
		for i := 0; i < n; i++ {
			outL, outR := r.ProcessStereo(0, 0)
			sum += float64(outL*outL + outR*outR)
		}
		return math.Sqrt(sum / float64(n))
	}

	early := rms(22050)
	rms(22050)
	rms(22050)
	late := rms(22050)

	if late >= early {
		t.Errorf("Tail should decay: early RMS %g, late RMS %g", early, late)
	}
	if late > early*0.1 {
		t.Errorf("Tail decays too slowly for 0.5s RT60: early %g, late %g", early, late)
	}
}

func TestStereoChannelsDecorrelated(t *testing.T) {
	r := NewStereo(44100, 0.5, 1.0, 0.3)

	r.ProcessStereo(1.0, 1.0)

	differ := false
	for i := 0; i < 10000; i++ {
		outL, outR := r.ProcessStereo(0, 0)
		if outL != outR {
			differ = true
			break
		}
	}
	if !differ {
		t.Error("Left and right tails should be decorrelated")
	}
}

func TestStereoReset(t *testing.T) {
	r := NewStereo(44100, 0.5, 1.0, 0.3)

	r.ProcessStereo(1.0, 1.0)
	for i := 0; i < 1000; i++ {
		r.ProcessStereo(0, 0)
	}
	r.Reset()

	outL, outR := r.ProcessStereo(0, 0)
	if outL != 0 || outR != 0 {
		t.Error("Reverb should be silent after reset")
	}
}
