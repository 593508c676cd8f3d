package filter

import (
	"math"
	"testing"
)

// sineRMS feeds a sine at freq through f and returns the steady-state RMS
// of the output relative to the input RMS (1/sqrt2).
func sineRMS(next func(float32) float32, freq, sampleRate float64) float64 {
	const settle = 4410
	const measure = 44100
	var sum float64
	for i := 0; i < settle+measure; i++ {
		t := float64(i) / sampleRate
		out := float64(next(float32(math.Sin(2 * math.Pi * freq * t))))
		if i >= settle {
			sum += out * out
		}
	}
	return math.Sqrt(sum/measure) / (1.0 / math.Sqrt2)
}

func TestBiquadLowpassAttenuatesHighs(t *testing.T) {
	b := NewBiquad()
	b.SetLowpass(44100, 1000, 0.707)

	low := sineRMS(b.Next, 100, 44100)
	b.Reset()
	high := sineRMS(b.Next, 10000, 44100)

	if low < 0.9 {
		t.Errorf("Passband gain should be near 1, got %f", low)
	}
	if high > 0.05 {
		t.Errorf("10x stopband gain should be tiny, got %f", high)
	}
}

func TestBiquadHighpassAttenuatesLows(t *testing.T) {
	b := NewBiquad()
	b.SetHighpass(44100, 1000, 0.707)

	low := sineRMS(b.Next, 100, 44100)
	b.Reset()
	high := sineRMS(b.Next, 8000, 44100)

	if high < 0.9 {
		t.Errorf("Passband gain should be near 1, got %f", high)
	}
	if low > 0.05 {
		t.Errorf("Stopband gain should be tiny, got %f", low)
	}
}

func TestBiquadBandpassPeaksAtCenter(t *testing.T) {
	b := NewBiquad()
	b.SetBandpass(44100, 2000, 1.5)

	center := sineRMS(b.Next, 2000, 44100)
	b.Reset()
	below := sineRMS(b.Next, 200, 44100)
	b.Reset()
	above := sineRMS(b.Next, 15000, 44100)

	if center < below || center < above {
		t.Errorf("Bandpass gain at center (%f) should exceed skirts (%f, %f)",
			center, below, above)
	}
}

func TestBiquadReset(t *testing.T) {
	b := NewBiquad()
	b.SetLowpass(44100, 500, 0.707)

	b.Next(1.0)
	b.Next(1.0)
	b.Reset()

	// After reset the first output for zero input must be exactly zero.
	if out := b.Next(0.0); out != 0.0 {
		t.Errorf("Expected zero output after reset, got %f", out)
	}
}

func TestOnePoleLowpass(t *testing.T) {
	p := NewLowPole(44100, 500)

	low := sineRMS(p.Next, 50, 44100)
	p.Reset()
	high := sineRMS(p.Next, 10000, 44100)

	if low < 0.9 {
		t.Errorf("Passband gain should be near 1, got %f", low)
	}
	if high > 0.2 {
		t.Errorf("Stopband gain should be small, got %f", high)
	}
}

func TestOnePoleHighpass(t *testing.T) {
	p := NewHighPole(44100, 2000)

	low := sineRMS(p.Next, 50, 44100)
	p.Reset()
	high := sineRMS(p.Next, 15000, 44100)

	if high < 0.8 {
		t.Errorf("Passband gain should be near 1, got %f", high)
	}
	if low > 0.2 {
		t.Errorf("Stopband gain should be small, got %f", low)
	}
}

func TestOnePoleRetuneIsStable(t *testing.T) {
	p := NewLowPole(44100, 10000)

	// Sweep the cutoff down every sample, as the whoosh layers do.
	for i := 0; i < 44100; i++ {
		cutoff := 10000.0 * math.Exp(-float64(i)/4410.0)
		p.SetCutoff(cutoff)
		out := p.Next(1.0)
		if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
			t.Fatalf("Non-finite output at sample %d", i)
		}
	}
}

func TestMoogPassesLowsAttenuatesHighs(t *testing.T) {
	m := NewMoog(44100, 1000, 1.0)

	low := sineRMS(m.Next, 100, 44100)
	m.Reset()
	high := sineRMS(m.Next, 12000, 44100)

	if low < 0.7 {
		t.Errorf("Passband gain too low: %f", low)
	}
	if high > 0.05 {
		t.Errorf("24dB/oct stopband gain should be tiny, got %f", high)
	}
}

func TestMoogBoundedAtHighResonance(t *testing.T) {
	m := NewMoog(44100, 2000, 10.0)

	for i := 0; i < 44100; i++ {
		out := m.Next(float32(math.Sin(2 * math.Pi * 2000 * float64(i) / 44100)))
		if math.IsNaN(float64(out)) || math.Abs(float64(out)) > 10 {
			t.Fatalf("Unbounded output %f at sample %d", out, i)
		}
	}
}
