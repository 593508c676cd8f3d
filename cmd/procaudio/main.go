// Command procaudio demonstrates the engine end to end: it renders preset
// sound effects or a generic synth chain to the default audio device, and
// offers a small TUI that retunes the continuous presets while they play.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/justyntemme/procaudio/pkg/debug"
	"github.com/justyntemme/procaudio/pkg/graph"
	"github.com/justyntemme/procaudio/pkg/playback"
	"github.com/justyntemme/procaudio/pkg/preset"
	"github.com/justyntemme/procaudio/pkg/synth"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information."`
	Verbose bool `help:"Enable debug logging."`
	Rate    int  `default:"44100" help:"Output sample rate in Hz."`

	Play PlayCmd `cmd:"" help:"Render a preset or synth chain to the audio device."`
	Tune TuneCmd `cmd:"" help:"Live-tune a continuous preset from the terminal."`
	List ListCmd `cmd:"" help:"List available presets."`
}

// oneShot describes a preset with a fixed play duration.
type oneShot struct {
	duration time.Duration
	build    func(intensity, pitch, reverbMix float64) *graph.Net
}

var oneShots = map[string]oneShot{
	"sword-slash": {1500 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildSwordSlash(preset.SwordSlash{Intensity: i, PitchShift: p, ReverbMix: r})
	}},
	"blunt-impact": {500 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildBluntImpact(preset.BluntImpact{Intensity: i, PitchShift: p, ReverbMix: r})
	}},
	"lightning-zap": {800 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildLightningZap(preset.LightningZap{Intensity: i, PitchShift: p, ReverbMix: r})
	}},
	"lightning-strike": {3500 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildLightningStrike(preset.LightningStrike{Intensity: i, PitchShift: p, ReverbMix: r})
	}},
	"explosion": {3500 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildExplosion(preset.Explosion{Intensity: i, PitchShift: p, ReverbMix: r, Lowpass: 20000})
	}},
	"arcane-attack": {1200 * time.Millisecond, func(i, p, r float64) *graph.Net {
		return preset.BuildArcaneAttack(preset.ArcaneAttack{Intensity: i, PitchShift: p, ReverbMix: r, Lowpass: 20000})
	}},
}

// PlayCmd renders one preset (or a plain synth chain) and exits.
type PlayCmd struct {
	Preset    string  `arg:"" help:"Preset name, or 'synth' for a generic chain."`
	Intensity float64 `default:"0.8" help:"Overall intensity (0-1)."`
	Pitch     float64 `default:"1.0" help:"Pitch multiplier."`
	Reverb    float64 `default:"0.0" help:"Reverb wet mix (0-1)."`
	Freq      float64 `default:"440" help:"Synth chain frequency in Hz."`
	Duration  float64 `default:"0" help:"Override play duration in seconds (0 = preset default)."`
}

func (c *PlayCmd) Run(cli *CLI) error {
	sink, err := playback.NewSink(cli.Rate, 2)
	if err != nil {
		return err
	}
	engine := playback.NewEngine(sink)
	defer engine.Close()

	var net *graph.Net
	duration := time.Duration(c.Duration * float64(time.Second))

	switch c.Preset {
	case "synth":
		cfg := synth.DefaultConfig()
		cfg.Frequency = c.Freq
		if c.Reverb > 0 {
			cfg.Reverb = &synth.Reverb{RoomSize: 0.5, DecayTime: 1.5, Damping: 0.3, Mix: c.Reverb}
		}
		net, _ = synth.Build(cfg)
		if duration == 0 {
			duration = 2 * time.Second
		}
	default:
		entry, ok := oneShots[c.Preset]
		if !ok {
			return fmt.Errorf("unknown preset %q (try 'procaudio list')", c.Preset)
		}
		net = entry.build(c.Intensity, c.Pitch, c.Reverb)
		if duration == 0 {
			duration = entry.duration
		}
	}

	asset := playback.NewAsset(net, cli.Rate, 2)
	if _, err := engine.PlayFor(asset, c.Preset, duration); err != nil {
		return err
	}

	// Drive lifetimes at a host-tick cadence until the one-shot despawns.
	const tick = 16 * time.Millisecond
	for engine.Active() > 0 {
		time.Sleep(tick)
		engine.Tick(tick)
	}
	return nil
}

// ListCmd prints the preset names.
type ListCmd struct{}

func (c *ListCmd) Run(cli *CLI) error {
	for name, entry := range oneShots {
		fmt.Printf("%-18s one-shot, %s\n", name, entry.duration)
	}
	fmt.Printf("%-18s continuous (tune)\n", "heartbeat")
	fmt.Printf("%-18s continuous (tune)\n", "ear-ringing")
	fmt.Printf("%-18s generic chain (play)\n", "synth")
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("procaudio"),
		kong.Description("Procedural audio synthesis engine demo"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Printf("procaudio %s\n", version)
		os.Exit(0)
	}
	if cli.Verbose {
		debug.SetLevel(debug.LogLevelDebug)
	}

	if err := ctx.Run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "procaudio: %v\n", err)
		os.Exit(1)
	}
}
