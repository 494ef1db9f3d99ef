package main

import (
	"fmt"
	"os"

	"github.com/justyntemme/lunchbox/pkg/framework/param"
	"github.com/justyntemme/lunchbox/pkg/framework/state"
	"github.com/justyntemme/lunchbox/pkg/lunchbox"
)

func loadStateFile(p *lunchbox.Processor, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	if err := p.LoadState(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func saveStateFile(p *lunchbox.Processor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	if err := p.SaveState(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// StateCmd groups the state file commands
type StateCmd struct {
	Show StateShowCmd `cmd:"" help:"Print the fields of a state file"`
	Init StateInitCmd `cmd:"" help:"Write a state file from the defaults and --param"`
}

// StateShowCmd prints a state file
type StateShowCmd struct {
	File string `arg:"" type:"existingfile" help:"State file"`
}

// Run executes the state show command
func (c *StateShowCmd) Run(g *Globals) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	values, err := lunchbox.StateLayout.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	p, done, err := g.newProcessor()
	if err != nil {
		return err
	}
	defer done.Close()

	printTitle(os.Stdout, c.File)
	printTable(os.Stdout, []string{"field", "kind", "value", "display"}, stateRows(p.Parameters(), lunchbox.StateLayout, values))
	return nil
}

// StateInitCmd writes a state file
type StateInitCmd struct {
	File   string   `arg:"" type:"path" help:"State file to write"`
	Params []string `short:"p" name:"param" placeholder:"NAME=VALUE" help:"Set a parameter in display units; repeatable"`
}

// Run executes the state init command
func (c *StateInitCmd) Run(g *Globals) error {
	p, done, err := g.newProcessor()
	if err != nil {
		return err
	}
	defer done.Close()

	if err := applyParams(p.Parameters(), c.Params); err != nil {
		return err
	}
	if err := saveStateFile(p, c.File); err != nil {
		return err
	}

	printTitle(os.Stdout, "Wrote "+c.File)
	rows := make([][]string, 0, len(c.Params))
	for _, r := range describe(p.Parameters()) {
		rows = append(rows, []string{r.Name, fmt.Sprintf("%.4f", r.Normalized), r.Display})
	}
	printTable(os.Stdout, []string{"parameter", "value", "display"}, rows)
	return nil
}

// stateRows formats decoded state values next to their display form
func stateRows(r *param.Registry, layout state.Layout, values []float64) [][]string {
	rows := make([][]string, 0, len(layout))
	for i, f := range layout {
		kind := "float32"
		if f.Kind == state.Bool {
			kind = "int32"
		}
		display := ""
		if p := r.Get(f.ID); p != nil {
			display = p.FormatValue(values[i])
		}
		rows = append(rows, []string{f.Name, kind, fmt.Sprintf("%.6g", values[i]), display})
	}
	return rows
}
