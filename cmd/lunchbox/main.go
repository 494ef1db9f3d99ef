// Command lunchbox renders audio through the lunchbox channel strip and
// inspects its state, frequency response and meters.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/justyntemme/lunchbox/pkg/framework/debug"
	"github.com/justyntemme/lunchbox/pkg/lunchbox"
)

// Globals are the flags shared by every command
type Globals struct {
	LogLevel string `default:"warn" enum:"debug,info,warn,error,off" help:"Processor lifecycle log level"`
	LogFile  string `type:"path" help:"Append lifecycle logs to this file instead of stderr"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version information"`
	Render   RenderCmd        `cmd:"" help:"Render a WAV file through the chain"`
	State    StateCmd         `cmd:"" help:"Inspect or create persisted state files"`
	Response ResponseCmd      `cmd:"" help:"Measure the magnitude response of the tone stage or the chain"`
	Meter    MeterCmd         `cmd:"" help:"Play a file through the chain and watch the meters"`
}

// nopCloser closes nothing
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// logger builds the lifecycle logger described by the global flags
func (g *Globals) logger() (*debug.Logger, io.Closer, error) {
	level, err := debug.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		l      *debug.Logger
		closer io.Closer = nopCloser{}
	)
	if g.LogFile != "" {
		l, closer, err = debug.NewFileLogger(g.LogFile, "lunchbox", debug.DefaultFlags)
		if err != nil {
			return nil, nil, err
		}
	} else {
		l = debug.New(os.Stderr, "lunchbox", debug.FlagLevel|debug.FlagPrefix)
	}
	l.SetLevel(level)
	return l, closer, nil
}

// newProcessor creates a processor logging through g
func (g *Globals) newProcessor(opts ...lunchbox.Option) (*lunchbox.Processor, io.Closer, error) {
	l, closer, err := g.logger()
	if err != nil {
		return nil, nil, err
	}
	p, err := lunchbox.New(append([]lunchbox.Option{lunchbox.WithLogger(l)}, opts...)...)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return p, closer, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lunchbox"),
		kong.Description("Stereo channel strip: drive, tone, de-ess, compress, inflate"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s %s", lunchbox.PluginName, lunchbox.PluginVersion),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
