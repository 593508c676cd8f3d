package param

import (
	"sync"
	"testing"
)

func TestHandleCreation(t *testing.T) {
	h := New("frequency", 440.0, 20.0, 20000.0)

	if h.Name != "frequency" {
		t.Errorf("Expected name frequency, got %s", h.Name)
	}
	if h.Get() != 440.0 {
		t.Errorf("Expected initial value 440, got %f", h.Get())
	}
}

func TestHandleInitialClamping(t *testing.T) {
	h := New("amplitude", 5.0, 0.0, 1.0)

	if h.Get() != 1.0 {
		t.Errorf("Initial value should be clamped to 1.0, got %f", h.Get())
	}
}

func TestHandleSetClamps(t *testing.T) {
	h := New("cutoff", 1000.0, 200.0, 20000.0)

	cases := []struct {
		in, want float64
	}{
		{500.0, 500.0},
		{100.0, 200.0},
		{-3.0, 200.0},
		{25000.0, 20000.0},
		{200.0, 200.0},
		{20000.0, 20000.0},
	}

	for _, c := range cases {
		h.Set(c.in)
		if got := h.Get(); got != c.want {
			t.Errorf("Set(%f): expected %f, got %f", c.in, c.want, got)
		}
	}
}

func TestHandleLastWriteWins(t *testing.T) {
	h := New("rate", 72.0, 30.0, 220.0)

	h.Set(100.0)
	h.Set(140.0)
	h.Set(60.0)

	if h.Get() != 60.0 {
		t.Errorf("Expected last written value 60, got %f", h.Get())
	}
}

func TestHandleConcurrentAccess(t *testing.T) {
	h := New("intensity", 0.5, 0.0, 1.0)

	var wg sync.WaitGroup
	wg.Add(2)

	// Writer simulates the control context, reader the render context.
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			h.Set(float64(i%100) / 100.0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			v := h.Get()
			if v < 0.0 || v > 1.0 {
				t.Errorf("Read out-of-range value %f", v)
				return
			}
		}
	}()

	wg.Wait()
}
