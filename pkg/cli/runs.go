package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/sigplot/pkg/overlay"
	"github.com/mchmarny/sigplot/pkg/series"
	urfave "github.com/urfave/cli/v3"
)

func newRunsCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "runplot",
		Usage:     "Overlay per-run signal series from one or more CSV files",
		ArgsUsage: "FILE.csv [FILE.csv...]",
		UsageText: `runplot *.csv                              # one plot-NNNNN.png per run in the first file
   runplot --dir out --skip-missing 0-1.csv 0-2.csv`,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to write images to (default: current dir)",
			},
			&urfave.StringFlag{
				Name:  "pattern",
				Usage: "Image name pattern formatted with the run number (default: plot-%05d.png)",
			},
			&urfave.BoolFlag{
				Name:  "skip-missing",
				Usage: "Skip files lacking a run instead of failing (optional, default: false)",
			},
			newConfigFlag(),
			newFormatFlag(),
			newDebugFlag(),
		},
		Action: cmdRuns,
	}
}

func cmdRuns(_ context.Context, c *urfave.Command) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		fmt.Fprintf(c.Root().Writer, "usage: %s FILE.csv [FILE.csv...]\n", c.Name)
		return urfave.Exit("", exitFail)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet("dir") {
		cfg.Dir = c.String("dir")
	}
	if c.IsSet("pattern") {
		cfg.RunPattern = c.String("pattern")
	}
	if c.IsSet("skip-missing") {
		cfg.SkipMissing = c.Bool("skip-missing")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	inputs := make([]overlay.Input, 0, len(files))
	for _, f := range files {
		g, err := series.ParseRunsFile(f)
		if err != nil {
			return err
		}
		inputs = append(inputs, overlay.Input{Label: overlay.Label(f), Grouping: g})
		slog.Debug("file parsed", "path", f, "runs", g.Len(), "rows", g.Total())
	}

	opts := overlay.RunOptions{
		Dir:         cfg.Dir,
		Pattern:     cfg.RunPattern,
		SkipMissing: cfg.SkipMissing,
	}

	figs, err := overlay.Runs(inputs, opts, newRenderer(cfg))
	if err != nil {
		slog.Debug("plots written before failure", "count", len(figs), "dir", cfg.Dir)
		return err
	}
	slog.Info("plots written", "count", len(figs), "dir", cfg.Dir)

	return report(c, figs)
}
