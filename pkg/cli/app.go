package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mchmarny/sigplot/pkg/chart"
	"github.com/mchmarny/sigplot/pkg/config"
	"github.com/mchmarny/sigplot/pkg/logging"
	urfave "github.com/urfave/cli/v3"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	exitOK   = 0
	exitFail = 1
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

// common flags, built per command so repeated runs start clean
func newDebugFlag() *urfave.BoolFlag {
	return &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}
}

func newConfigFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file (optional)",
	}
}

func newFormatFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:  "format",
		Usage: "Print a report of written plots [json, yaml] (optional)",
	}
}

// ExecutePairs runs the pairplot command and exits.
func ExecutePairs() {
	os.Exit(RunPairs(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// ExecuteRuns runs the runplot command and exits.
func ExecuteRuns() {
	os.Exit(RunRuns(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// RunPairs runs pairplot with args and returns the process exit code.
func RunPairs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, newPairsCommand(), args, stdout, stderr)
}

// RunRuns runs runplot with args and returns the process exit code.
func RunRuns(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, newRunsCommand(), args, stdout, stderr)
}

func run(ctx context.Context, cmd *urfave.Command, args []string, stdout, stderr io.Writer) int {
	initLogging(stderr, false)

	cmd.Version = fmt.Sprintf("%s (%s - %s)", version, commit, date)
	cmd.HideHelpCommand = true
	cmd.Writer = stdout
	cmd.ErrWriter = stderr
	cmd.ExitErrHandler = func(context.Context, *urfave.Command, error) {}
	cmd.Before = func(ctx context.Context, c *urfave.Command) (context.Context, error) {
		if c.Bool("debug") {
			initLogging(stderr, true)
		}
		switch f := c.String("format"); f {
		case "", formatJSON, formatYAML, "yml":
		default:
			return ctx, urfave.Exit(fmt.Sprintf("unsupported format: %s", f), exitFail)
		}
		return ctx, nil
	}

	err := cmd.Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var ec urfave.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			slog.Error(msg)
		}
		return ec.ExitCode()
	}

	slog.Error("fatal error", "error", err)
	return exitFail
}

func initLogging(w io.Writer, debug bool) {
	level := "info"
	if debug {
		level = "debug"
	}
	slog.SetDefault(logging.NewCLILogger(w, level))
}

// loadConfig reads the config file named by the config flag, if any.
func loadConfig(c *urfave.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newRenderer(cfg *config.Config) *chart.PNGRenderer {
	return &chart.PNGRenderer{
		Alpha:  cfg.Alpha,
		Width:  vg.Length(cfg.Width) * vg.Inch,
		Height: vg.Length(cfg.Height) * vg.Inch,
	}
}

type seriesReport struct {
	Label string `json:"label" yaml:"label"`
	Len   int    `json:"len" yaml:"len"`
}

type plotReport struct {
	Path   string         `json:"path" yaml:"path"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Series []seriesReport `json:"series" yaml:"series"`
}

func newReport(figs []*chart.Figure) []plotReport {
	out := make([]plotReport, 0, len(figs))
	for _, f := range figs {
		r := plotReport{
			Path:   f.Path,
			Title:  f.Title,
			Series: make([]seriesReport, 0, len(f.Lines)),
		}
		for _, l := range f.Lines {
			r.Series = append(r.Series, seriesReport{Label: l.Label, Len: len(l.Values)})
		}
		out = append(out, r)
	}
	return out
}

// report prints what was written when a format is requested.
func report(c *urfave.Command, figs []*chart.Figure) error {
	format := c.String("format")
	if format == "" {
		return nil
	}
	return encode(c.Root().Writer, format, newReport(figs))
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "yml":
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	case formatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
