package main

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/lunchbox/internal/ui"
	"github.com/justyntemme/lunchbox/pkg/framework/process"
	"github.com/justyntemme/lunchbox/pkg/lunchbox"
)

// MeterCmd plays a file through the chain at real-time pace and shows the
// meters. No audio is output.
type MeterCmd struct {
	ChainFlags

	Input string  `arg:"" type:"existingfile" help:"Input WAV file"`
	Block int     `default:"1024" help:"Frames per processing block"`
	Speed float64 `default:"1" help:"Playback speed relative to real time"`
	Loop  bool    `help:"Restart from the beginning at the end of the file"`
}

// Run executes the meter command
func (c *MeterCmd) Run(g *Globals) error {
	if c.Block <= 0 || c.Speed <= 0 {
		return fmt.Errorf("block size and speed must be positive")
	}

	src, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	// keep lifecycle logs off the alternate screen
	if g.LogFile == "" {
		g.LogLevel = "off"
	}
	p, done, err := c.build(g, float64(src.rate), c.Block, process.SampleSize32)
	if err != nil {
		return err
	}
	defer done()

	model := ui.NewMeterModel(filepath.Base(c.Input), src.seconds())
	prog := tea.NewProgram(model, tea.WithAltScreen())

	stop := make(chan struct{})
	go c.play(p, src, prog, stop)

	_, err = prog.Run()
	close(stop)
	if err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// play processes one block per tick and forwards the meters to the UI
func (c *MeterCmd) play(p *lunchbox.Processor, src *clip, prog *tea.Program, stop <-chan struct{}) {
	period := time.Duration(float64(c.Block) / float64(src.rate) / c.Speed * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	in := [][]float32{make([]float32, c.Block), make([]float32, c.Block)}
	out := [][]float32{make([]float32, c.Block), make([]float32, c.Block)}

	n := src.frames()
	for pos := 0; ; pos += c.Block {
		if pos >= n {
			if !c.Loop {
				prog.Send(ui.DoneMsg{})
				return
			}
			pos = 0
		}

		frames := min(c.Block, n-pos)
		for i := range frames {
			in[0][i] = float32(src.left[pos+i])
			in[1][i] = float32(src.right[pos+i])
		}
		m := p.Process32(&process.Block[float32]{
			Input:  [][]float32{in[0][:frames], in[1][:frames]},
			Output: [][]float32{out[0][:frames], out[1][:frames]},
		})

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		prog.Send(ui.MetersMsg{
			Values:   [ui.NumMeters]float64{m.In, m.Out, m.DeEss, m.Comp},
			Elapsed:  period.Seconds(),
			Position: float64(pos+frames) / float64(src.rate),
		})
	}
}
