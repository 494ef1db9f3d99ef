package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
	"github.com/justyntemme/lunchbox/pkg/framework/debug"
	"github.com/justyntemme/lunchbox/pkg/framework/param"
	"github.com/justyntemme/lunchbox/pkg/framework/plugin"
	"github.com/justyntemme/lunchbox/pkg/framework/process"
	"github.com/justyntemme/lunchbox/pkg/lunchbox"
)

// ChainFlags configure the processor the same way for every command
type ChainFlags struct {
	Params []string `short:"p" name:"param" placeholder:"NAME=VALUE" help:"Set a parameter in display units (dB, %, on/off); repeatable"`
	State  string   `type:"existingfile" help:"Load a persisted state file before applying --param"`
	Gate   bool     `help:"Insert the noise gate after the compressor"`
	Seed   uint64   `help:"Dither seed; 0 draws a random one"`
}

// build creates, configures and activates a processor at rate
func (f *ChainFlags) build(g *Globals, rate float64, block int, size process.SampleSize) (*lunchbox.Processor, func(), error) {
	opts := []lunchbox.Option{lunchbox.WithGate(f.Gate)}
	if f.Seed != 0 {
		opts = append(opts, lunchbox.WithSeed(f.Seed))
	}

	p, closer, err := g.newProcessor(opts...)
	if err != nil {
		return nil, nil, err
	}
	done := func() { _ = closer.Close() }

	fail := func(err error) (*lunchbox.Processor, func(), error) {
		done()
		return nil, nil, err
	}

	if f.State != "" {
		if err := loadStateFile(p, f.State); err != nil {
			return fail(err)
		}
	}
	if err := applyParams(p.Parameters(), f.Params); err != nil {
		return fail(err)
	}
	if err := p.Setup(plugin.Setup{SampleRate: rate, MaxBlockSize: int32(block), SampleSize: size}); err != nil {
		return fail(err)
	}
	if err := p.SetActive(true); err != nil {
		return fail(err)
	}
	return p, done, nil
}

// RenderCmd renders a file through the chain
type RenderCmd struct {
	ChainFlags

	Input     string `arg:"" type:"existingfile" help:"Input WAV file (mono or stereo PCM)"`
	Output    string `arg:"" type:"path" help:"Output WAV file"`
	Precision string `default:"32" enum:"32,64" help:"Processing sample size in bits"`
	Block     int    `default:"512" help:"Frames per processing block"`
	Rate      int    `help:"Resample the input to this rate before processing"`
	SaveState string `type:"path" help:"Write the final parameter state to this file"`
}

// Run executes the render command
func (c *RenderCmd) Run(g *Globals) error {
	if c.Block <= 0 {
		return fmt.Errorf("block size must be positive, got %d", c.Block)
	}
	size, err := parsePrecision(c.Precision)
	if err != nil {
		return err
	}

	src, err := readWAV(c.Input)
	if err != nil {
		return err
	}
	if c.Rate > 0 {
		if src, err = resampleClip(src, c.Rate); err != nil {
			return err
		}
	}

	p, done, err := c.build(g, float64(src.rate), c.Block, size)
	if err != nil {
		return err
	}
	defer done()

	prof := debug.NewBlockProfiler(float64(src.rate))
	var (
		out    *clip
		meters lunchbox.Meters
	)
	if size == process.SampleSize32 {
		out, meters = renderBlocks(src, c.Block, prof, p.Process32)
	} else {
		out, meters = renderBlocks(src, c.Block, prof, p.Process64)
	}

	if err := writeWAV(c.Output, out); err != nil {
		return err
	}
	if c.SaveState != "" {
		if err := saveStateFile(p, c.SaveState); err != nil {
			return err
		}
	}

	printRenderReport(p, src, out, meters, prof, size)
	return nil
}

func parsePrecision(s string) (process.SampleSize, error) {
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("precision %q: %w", s, err)
	}
	return process.ParseSampleSize(bits)
}

// renderBlocks feeds src through run in blocks of at most block frames and
// returns the rendered clip with the meters of the last block.
func renderBlocks[T dsp.Sample](src *clip, block int, prof *debug.BlockProfiler, run func(*process.Block[T]) lunchbox.Meters) (*clip, lunchbox.Meters) {
	n := src.frames()
	out := &clip{left: make([]float64, n), right: make([]float64, n), rate: src.rate, bits: src.bits}

	in := [][]T{make([]T, block), make([]T, block)}
	res := [][]T{make([]T, block), make([]T, block)}
	changes := param.NewChanges(8)
	meters := lunchbox.IdleMeters

	for pos := 0; pos < n; pos += block {
		frames := min(block, n-pos)
		for i := range frames {
			in[0][i] = T(src.left[pos+i])
			in[1][i] = T(src.right[pos+i])
		}

		b := &process.Block[T]{
			Input:         [][]T{in[0][:frames], in[1][:frames]},
			Output:        [][]T{res[0][:frames], res[1][:frames]},
			OutputChanges: changes,
		}
		prof.Block(frames, func() { meters = run(b) })
		changes.Clear()

		for i := range frames {
			out.left[pos+i] = float64(res[0][i])
			out.right[pos+i] = float64(res[1][i])
		}
	}
	return out, meters
}

func printRenderReport(p *lunchbox.Processor, src, out *clip, m lunchbox.Meters, prof *debug.BlockProfiler, size process.SampleSize) {
	w := os.Stdout
	printTitle(w, "Lunchbox render")
	printKV(w, "Format", fmt.Sprintf("%d Hz, %d-bit file, %s processing", out.rate, out.bits, size))
	printKV(w, "Duration", fmt.Sprintf("%.2f s", out.seconds()))
	printKV(w, "DSP load", fmt.Sprintf("%.2f%% of real time", 100*prof.Load()))
	fmt.Fprintln(w)

	rows := make([][]string, 0, 4)
	for _, ch := range []struct {
		name    string
		samples []float64
	}{
		{"in L", src.left}, {"in R", src.right},
		{"out L", out.left}, {"out R", out.right},
	} {
		l := analysis.MeasureLevels(ch.samples)
		rows = append(rows, []string{ch.name, fmt.Sprintf("%.2f", l.PeakDB), fmt.Sprintf("%.2f", l.RMSDB), fmt.Sprintf("%.5f", l.DC)})
	}
	printTable(w, []string{"channel", "peak dB", "rms dB", "dc"}, rows)
	fmt.Fprintln(w)

	printKV(w, "Correlation", fmt.Sprintf("in %.3f, out %.3f", analysis.Correlation(src.left, src.right), analysis.Correlation(out.left, out.right)))

	reg := p.Parameters()
	for _, mv := range []struct {
		name string
		id   uint32
		v    float64
	}{
		{"In meter", lunchbox.ParamInVuPPM, m.In},
		{"Out meter", lunchbox.ParamOutVuPPM, m.Out},
		{"De-ess", lunchbox.ParamDeEssVuPPM, m.DeEss},
		{"Comp", lunchbox.ParamCompVuPPM, m.Comp},
	} {
		printKV(w, mv.name, reg.Get(mv.id).FormatValue(mv.v)+" dB")
	}
}
