package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/sigplot/pkg/chart"
	"github.com/mchmarny/sigplot/pkg/overlay"
	"github.com/mchmarny/sigplot/pkg/sample"
	"github.com/mchmarny/sigplot/pkg/series"
	urfave "github.com/urfave/cli/v3"
)

func newPairsCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "pairplot",
		Usage: "Plot a random sample of antenna pair series from a signal log",
		UsageText: `pairplot                                   # read log.csv, write plot.png
   pairplot --input scan.csv --count 4 --seed 7
   pairplot --config plot.yaml --format yaml`,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Headerless CSV log of pair,value rows (default: log.csv)",
			},
			&urfave.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Image file to write (default: plot.png)",
			},
			&urfave.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of series to sample (default: 6)",
			},
			&urfave.Uint64Flag{
				Name:  "seed",
				Usage: "Random seed for reproducible sampling (default: clock)",
			},
			newConfigFlag(),
			newFormatFlag(),
			newDebugFlag(),
		},
		Action: cmdPairs,
	}
}

func cmdPairs(_ context.Context, c *urfave.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("count") {
		cfg.Count = c.Int("count")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	g, err := series.ParsePairsFile(cfg.Input)
	if err != nil {
		return err
	}
	slog.Debug("log parsed", "input", cfg.Input, "pairs", g.Len(), "rows", g.Total())

	opts := overlay.SampledOptions{
		Output: cfg.Output,
		Count:  cfg.Count,
		Rand:   sample.NewRand(cfg.Seed),
	}

	fig, err := overlay.Sampled(g, opts, newRenderer(cfg))
	if err != nil {
		return err
	}
	slog.Info("plot written", "path", fig.Path, "series", len(fig.Lines))

	return report(c, []*chart.Figure{fig})
}
