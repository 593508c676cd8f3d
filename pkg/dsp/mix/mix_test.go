package mix

import (
	"math"
	"testing"
)

func TestDryWetEndpoints(t *testing.T) {
	if got := DryWet(0.8, -0.3, 0.0); got != 0.8 {
		t.Errorf("Amount 0 should return dry, got %f", got)
	}
	if got := DryWet(0.8, -0.3, 1.0); got != -0.3 {
		t.Errorf("Amount 1 should return wet, got %f", got)
	}
}

func TestDryWetIsLinear(t *testing.T) {
	dry, wet := float32(1.0), float32(-1.0)

	for _, amount := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := DryWet(dry, wet, amount)
		want := dry*(1-amount) + wet*amount
		if math.Abs(float64(got-want)) > 1e-7 {
			t.Errorf("Amount %f: expected %f, got %f", amount, want, got)
		}
	}
}

func TestDryWetBuffer(t *testing.T) {
	dry := []float32{1, 1, 1, 1}
	wet := []float32{0, 0, 0, 0}

	DryWetBuffer(dry, wet, 0.25)

	for i, v := range dry {
		if math.Abs(float64(v-0.75)) > 1e-7 {
			t.Errorf("Sample %d: expected 0.75, got %f", i, v)
		}
	}
}

func TestSum(t *testing.T) {
	dst := []float32{1, 2, 3}
	src := []float32{0.5, -2, 1}

	Sum(dst, src)

	want := []float32{1.5, 0, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("Sample %d: expected %f, got %f", i, want[i], dst[i])
		}
	}
}
