package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/mchmarny/sigplot/pkg/chart"
	"github.com/mchmarny/sigplot/pkg/sample"
	"github.com/mchmarny/sigplot/pkg/series"
)

const (
	// DefaultRunPattern names one image per run number.
	DefaultRunPattern = "plot-%05d.png"

	csvExt = ".csv"
)

var (
	// ErrNoInputs is returned when no run inputs are given.
	ErrNoInputs = errors.New("at least one input required")

	// ErrRunMissing is returned when a later input lacks a run present in the first.
	ErrRunMissing = errors.New("run not found in input")
)

// SampledOptions configures Sampled.
type SampledOptions struct {
	Output string
	Count  int
	Rand   *rand.Rand
}

// Sampled picks opts.Count random keys from g and renders their series
// overlaid on a single figure written to opts.Output.
func Sampled(g *series.Grouping[string], opts SampledOptions, r chart.Renderer) (*chart.Figure, error) {
	if g == nil {
		return nil, errors.New("grouping required")
	}
	if r == nil {
		return nil, errors.New("renderer required")
	}

	keys, err := sample.Keys(g.Keys(), opts.Count, opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to sample keys: %w", err)
	}
	slog.Debug("sampled keys", "keys", keys)

	fig := &chart.Figure{Path: opts.Output}
	for _, k := range keys {
		s, _ := g.Get(k)
		fig.Add(k, s)
	}

	if err := r.Render(fig); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", opts.Output, err)
	}
	return fig, nil
}

// Input is one labeled run grouping.
type Input struct {
	Label    string
	Grouping *series.Grouping[int]
}

// RunOptions configures Runs.
type RunOptions struct {
	Dir         string
	Pattern     string
	SkipMissing bool
}

// Runs renders one figure per run number of the first input. Each figure
// overlays that run's series from every input in order. Figures rendered
// before an error are returned along with it.
func Runs(inputs []Input, opts RunOptions, r chart.Renderer) ([]*chart.Figure, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if r == nil {
		return nil, errors.New("renderer required")
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultRunPattern
	}

	runs := inputs[0].Grouping.Keys()
	figs := make([]*chart.Figure, 0, len(runs))

	for _, run := range runs {
		fig := &chart.Figure{
			Path:  filepath.Join(opts.Dir, RunFileName(pattern, run)),
			Title: fmt.Sprintf("Run %d", run),
		}

		for _, in := range inputs {
			s, ok := in.Grouping.Get(run)
			if !ok {
				if opts.SkipMissing {
					slog.Warn("run missing, skipping input", "run", run, "input", in.Label)
					continue
				}
				return figs, fmt.Errorf("%w: run %d in %s", ErrRunMissing, run, in.Label)
			}
			fig.Add(in.Label, s)
		}

		if err := r.Render(fig); err != nil {
			return figs, fmt.Errorf("failed to render run %d: %w", run, err)
		}
		figs = append(figs, fig)
	}

	return figs, nil
}

// Label returns the base name of path without a .csv extension.
func Label(path string) string {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), csvExt) {
		return base[:len(base)-len(csvExt)]
	}
	return base
}

// RunFileName formats the output name for a run number.
func RunFileName(pattern string, run int) string {
	return fmt.Sprintf(pattern, run)
}
