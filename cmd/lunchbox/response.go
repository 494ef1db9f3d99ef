package main

import (
	"fmt"
	"os"

	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
	"github.com/justyntemme/lunchbox/pkg/dsp/filter"
	"github.com/justyntemme/lunchbox/pkg/framework/process"
	"github.com/justyntemme/lunchbox/pkg/lunchbox"
)

// chainImpulseLevel keeps the nonlinear stages near their small-signal
// behavior while measuring the whole chain
const chainImpulseLevel = 1e-3

// ProbeFrequencies are the response measurement points in Hz
var ProbeFrequencies = []float64{20, 40, 100, 160, 320, 640, 1200, 2500, 5000, 10500, 16000, 20000}

// ResponseCmd measures a magnitude response
type ResponseCmd struct {
	ChainFlags

	Stage  string `default:"tone" enum:"tone,chain" help:"What to measure: the tone stage alone or the full chain"`
	Rate   int    `default:"48000" help:"Sample rate in Hz"`
	Length int    `default:"16384" help:"Impulse response length in samples"`
}

// Run executes the response command
func (c *ResponseCmd) Run(g *Globals) error {
	if c.Rate <= 0 || c.Length <= 0 {
		return fmt.Errorf("rate and length must be positive")
	}

	p, done, err := c.build(g, float64(c.Rate), c.Length, process.SampleSize64)
	if err != nil {
		return err
	}
	defer done()

	var ir []float64
	switch c.Stage {
	case "chain":
		ir = chainImpulse(p, c.Length)
	default:
		ir = toneImpulse(p.Settings(), float64(c.Rate), c.Length)
	}

	freqs := probes(float64(c.Rate))
	db, err := analysis.MagnitudeResponse(ir, float64(c.Rate), freqs)
	if err != nil {
		return err
	}

	printTitle(os.Stdout, fmt.Sprintf("%s response at %d Hz", c.Stage, c.Rate))
	rows := make([][]string, len(freqs))
	for i, f := range freqs {
		rows[i] = []string{fmt.Sprintf("%.0f", f), fmt.Sprintf("%+.2f", db[i])}
	}
	printTable(os.Stdout, []string{"Hz", "dB"}, rows)
	return nil
}

// probes returns the probe frequencies below Nyquist
func probes(rate float64) []float64 {
	out := make([]float64, 0, len(ProbeFrequencies))
	for _, f := range ProbeFrequencies {
		if f < rate/2 {
			out = append(out, f)
		}
	}
	return out
}

// toneImpulse returns the left impulse response of a tone stage with the
// controls of s
func toneImpulse(s lunchbox.Settings, rate float64, n int) []float64 {
	t := filter.NewTone(rate)
	t.SetControls(s.ToneControls())

	ir := make([]float64, n)
	for i := range ir {
		x := 0.0
		if i == 0 {
			x = 1
		}
		ir[i], _ = t.Tick(x, x)
	}
	return ir
}

// chainImpulse runs a small impulse through one double precision block of
// the processor and returns the left response normalized to unit input
func chainImpulse(p *lunchbox.Processor, n int) []float64 {
	in := [][]float64{make([]float64, n), make([]float64, n)}
	in[0][0], in[1][0] = chainImpulseLevel, chainImpulseLevel
	out := [][]float64{make([]float64, n), make([]float64, n)}

	p.Process64(&process.Block[float64]{Input: in, Output: out})

	ir := out[0]
	for i := range ir {
		ir[i] /= chainImpulseLevel
	}
	return ir
}
