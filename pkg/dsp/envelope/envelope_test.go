package envelope

import (
	"math"
	"testing"
)

func TestAttackDecayNegativeTimeIsZero(t *testing.T) {
	if got := AttackDecay(-0.01, 500, 6); got != 0 {
		t.Errorf("Expected 0 before onset, got %f", got)
	}
}

func TestAttackDecayRampsToPeak(t *testing.T) {
	// With a 500/s attack the ramp completes at t=2ms.
	early := AttackDecay(0.0005, 500, 6)
	peak := AttackDecay(0.002, 500, 6)

	if early >= peak {
		t.Errorf("Envelope should still be ramping at 0.5ms: %f >= %f", early, peak)
	}
	want := math.Exp(-6 * 0.002)
	if math.Abs(peak-want) > 1e-9 {
		t.Errorf("Expected %f at end of attack, got %f", want, peak)
	}
}

func TestAttackDecayDecays(t *testing.T) {
	a := AttackDecay(0.1, 500, 6)
	b := AttackDecay(0.5, 500, 6)
	c := AttackDecay(2.0, 500, 6)

	if !(a > b && b > c) {
		t.Errorf("Envelope should decay monotonically: %f, %f, %f", a, b, c)
	}
	if c <= 0 {
		t.Errorf("Exponential decay never reaches zero, got %f", c)
	}
}

func TestStutterNonNegative(t *testing.T) {
	for i := 0; i < 10000; i++ {
		tt := float64(i) / 10000.0
		if v := Stutter2(tt, 127.3, 89.7); v < 0 || v > 1 {
			t.Fatalf("Stutter2 out of [0,1] at t=%f: %f", tt, v)
		}
		if v := Stutter3(tt, 151.7, 103.3, 197.9); v < 0 || v > 1 {
			t.Fatalf("Stutter3 out of [0,1] at t=%f: %f", tt, v)
		}
	}
}

func TestStutterDeterministic(t *testing.T) {
	for i := 0; i < 1000; i++ {
		tt := float64(i) * 0.0007
		if Stutter3(tt, 127.3, 89.7, 211.1) != Stutter3(tt, 127.3, 89.7, 211.1) {
			t.Fatal("Stutter must be a pure function of time")
		}
	}
}

func TestStutterActuallyGates(t *testing.T) {
	// Over one second the rectified product must both open and close.
	var zeros, opens int
	for i := 0; i < 44100; i++ {
		tt := float64(i) / 44100.0
		if Stutter2(tt, 173.9, 67.3) == 0 {
			zeros++
		} else {
			opens++
		}
	}
	if zeros < 1000 || opens < 1000 {
		t.Errorf("Stutter should alternate open/closed, got %d zeros, %d opens", zeros, opens)
	}
}
