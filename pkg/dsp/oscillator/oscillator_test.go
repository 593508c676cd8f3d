package oscillator

import (
	"math"
	"testing"
)

func TestOscillatorCreation(t *testing.T) {
	osc := New(ShapeSine, 44100)

	if osc == nil {
		t.Fatal("Failed to create oscillator")
	}
	if osc.frequency != 440.0 {
		t.Errorf("Expected default frequency 440, got %f", osc.frequency)
	}
}

func TestSineRange(t *testing.T) {
	osc := New(ShapeSine, 44100)
	osc.SetFrequency(1000)

	for i := 0; i < 44100; i++ {
		s := osc.Next()
		if s < -1.0 || s > 1.0 {
			t.Fatalf("Sine sample %d out of range: %f", i, s)
		}
	}
}

func TestSinePeriod(t *testing.T) {
	const rate = 44100.0
	const freq = 441.0 // exactly 100 samples per period
	osc := New(ShapeSine, rate)
	osc.SetFrequency(freq)

	first := make([]float32, 100)
	for i := range first {
		first[i] = osc.Next()
	}
	for i := 0; i < 100; i++ {
		s := osc.Next()
		if math.Abs(float64(s-first[i])) > 1e-4 {
			t.Fatalf("Sine not periodic at sample %d: %f vs %f", i, s, first[i])
		}
	}
}

func TestSquareValues(t *testing.T) {
	osc := New(ShapeSquare, 44100)
	osc.SetFrequency(100)

	for i := 0; i < 1000; i++ {
		s := osc.Next()
		if s != 1.0 && s != -1.0 {
			t.Fatalf("Square sample should be ±1, got %f", s)
		}
	}
}

func TestTriangleRange(t *testing.T) {
	osc := New(ShapeTriangle, 44100)
	osc.SetFrequency(100)

	for i := 0; i < 1000; i++ {
		s := osc.Next()
		if s < -1.0 || s > 1.0 {
			t.Fatalf("Triangle sample out of range: %f", s)
		}
	}
}

func TestResetRestoresOutput(t *testing.T) {
	osc := New(ShapeSaw, 44100)
	osc.SetFrequency(330)

	first := osc.Next()
	osc.Next()
	osc.Next()
	osc.Reset()

	if got := osc.Next(); got != first {
		t.Errorf("Expected %f after reset, got %f", first, got)
	}
}

func TestNextAtMatchesFixedFrequency(t *testing.T) {
	a := New(ShapeSine, 44100)
	a.SetFrequency(880)
	b := New(ShapeSine, 44100)

	for i := 0; i < 1000; i++ {
		sa := a.Next()
		sb := b.NextAt(880)
		if sa != sb {
			t.Fatalf("Sample %d differs: fixed %f vs per-sample %f", i, sa, sb)
		}
	}
}
