package debug

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test", FlagLevel|FlagPrefix)
	l.SetLevel(LogLevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Error("Messages below the level should be filtered")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("Messages at or above the level should pass")
	}
}

func TestLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", FlagLevel)
	l.SetEnabled(false)
	l.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("Disabled logger wrote output: %q", buf.String())
	}
}

func TestLoggerFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "engine", FlagLevel|FlagPrefix)
	l.Info("playing %s at %d Hz", "heartbeat", 44100)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("Missing level tag: %q", out)
	}
	if !strings.Contains(out, "[engine]") {
		t.Errorf("Missing prefix: %q", out)
	}
	if !strings.Contains(out, "playing heartbeat at 44100 Hz") {
		t.Errorf("Missing formatted message: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Messages should end with a newline")
	}
}

func TestAnalyzeCleanSine(t *testing.T) {
	buf := make([]float32, 4410)
	for i := range buf {
		buf[i] = 0.5 * float32(math.Sin(2*math.Pi*441*float64(i)/44100))
	}

	result := NewAudioAnalyzer().Analyze(buf)
	if result.HasNaN {
		t.Error("Clean sine flagged as NaN")
	}
	if result.Clipping {
		t.Error("0.5 amplitude sine flagged as clipping")
	}
	if result.Silent {
		t.Error("Audible sine flagged as silent")
	}
	if result.Peak < 0.49 || result.Peak > 0.51 {
		t.Errorf("Peak should be ~0.5, got %f", result.Peak)
	}
	want := 0.5 / float32(math.Sqrt2)
	if result.RMS < want*0.98 || result.RMS > want*1.02 {
		t.Errorf("RMS should be ~%f, got %f", want, result.RMS)
	}
}

func TestAnalyzeDetectsNaNAndInf(t *testing.T) {
	buf := []float32{0, 0.1, float32(math.NaN()), 0.2, float32(math.Inf(1))}
	result := NewAudioAnalyzer().Analyze(buf)
	if !result.HasNaN || result.NaNCount != 2 {
		t.Errorf("Expected 2 non-finite samples, got %d", result.NaNCount)
	}
}

func TestAnalyzeDetectsSilenceAndClipping(t *testing.T) {
	silent := NewAudioAnalyzer().Analyze(make([]float32, 512))
	if !silent.Silent {
		t.Error("All-zero buffer should be silent")
	}

	hot := NewAudioAnalyzer().Analyze([]float32{1.0, -1.0, 0.995, 0.1})
	if !hot.Clipping || hot.ClippedSamples != 3 {
		t.Errorf("Expected 3 clipped samples, got %d", hot.ClippedSamples)
	}
}
