package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/okian/clipmark/internal/config"
)

// Parse reads args into a Config whose defaults come from cfg.
func Parse(args []string, cfg *config.Config, stderr io.Writer) (*Config, error) {
	c := &Config{}
	fs := flag.NewFlagSet("clipmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { ShowHelp(stderr) }

	fs.StringVar(&c.Encoding, "encoding", cfg.Encoding, "Input text encoding: utf-8, utf-8-sig, latin-1")
	fs.Float64Var(&c.FPS, "fps", cfg.FPS, "Frames per second of the frames column")
	fs.Float64Var(&c.Pre, "pre", cfg.PreSeconds, "Seconds of padding before each event")
	fs.Float64Var(&c.Post, "post", cfg.PostSeconds, "Seconds of padding after each event")
	fs.StringVar(&c.Offset, "offset", cfg.Offset, "Global offset in seconds or H:M:S, may be negative")
	fs.IntVar(&c.StartID, "start-id", cfg.StartID, "ID of the first instance")
	fs.StringVar(&c.Mapping, "mapping", "", "YAML file mapping roles to column names")
	fs.StringVar(&c.OutDir, "out", ".", "Output directory, or - for stdout (single input only)")
	fs.BoolVar(&c.Indent, "indent", cfg.Indent, "Pretty-print the XML")
	fs.IntVar(&c.Workers, "workers", cfg.BatchWorkers, "Concurrent conversions when several inputs are given")
	fs.IntVar(&c.Preview, "preview", -1, "Print the first N rows with computed times instead of converting")
	fs.StringVar(&c.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&c.Help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	c.Inputs = fs.Args()

	if c.Help {
		return c, nil
	}
	if len(c.Inputs) == 0 {
		return nil, ErrNoInputs
	}
	if c.OutDir == "-" && len(c.Inputs) > 1 && c.Preview < 0 {
		return nil, fmt.Errorf("%w: -out - needs exactly one input", ErrUsage)
	}
	return c, nil
}
