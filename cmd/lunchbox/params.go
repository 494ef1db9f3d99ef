package main

import (
	"fmt"
	"strings"

	"github.com/justyntemme/lunchbox/pkg/framework/param"
)

// applyParams sets name=value assignments. Values are given in the
// parameter's display units: dB for the trims, percent for knobs and
// on/off for switches.
func applyParams(r *param.Registry, assignments []string) error {
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("param %q: want name=value", a)
		}

		p, err := r.Lookup(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if p.Flags&param.IsReadOnly != 0 {
			return fmt.Errorf("param %s is read-only", p.Name)
		}

		n, err := p.ParseValue(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		p.SetValue(n)
	}
	return nil
}

// paramRow is one line of a parameter listing
type paramRow struct {
	Name       string
	Normalized float64
	Display    string
}

// describe lists the writable parameters of r in registration order
func describe(r *param.Registry) []paramRow {
	var rows []paramRow
	for _, p := range r.All() {
		if p.Flags&param.IsReadOnly != 0 {
			continue
		}
		v := p.GetValue()
		rows = append(rows, paramRow{Name: p.Name, Normalized: v, Display: p.FormatValue(v)})
	}
	return rows
}
