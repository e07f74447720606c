package chart

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/mchmarny/sigplot/pkg/series"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	// DefaultAlpha is the line opacity used when none is configured.
	DefaultAlpha = 0.5

	// DefaultWidth and DefaultHeight match a 640x480 image at 100 dpi.
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch

	dirMode = 0755
)

// Line is one labeled series on a figure.
type Line struct {
	Label  string
	Values series.Series
}

// Figure describes a single overlay chart and where it is written.
type Figure struct {
	Path  string
	Title string
	Lines []Line
}

// Add appends a labeled series to the figure.
func (f *Figure) Add(label string, values series.Series) {
	f.Lines = append(f.Lines, Line{Label: label, Values: values})
}

// Renderer writes a figure out.
type Renderer interface {
	Render(f *Figure) error
}

// PNGRenderer draws figures with gonum/plot. The image format follows the
// figure path extension.
type PNGRenderer struct {
	Alpha  float64
	Width  vg.Length
	Height vg.Length
}

// NewPNGRenderer returns a renderer with the default size and opacity.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{
		Alpha:  DefaultAlpha,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Render draws every line of f on a new plot and saves it to f.Path,
// replacing any existing file.
func (r *PNGRenderer) Render(f *Figure) error {
	if f == nil {
		return errors.New("figure required")
	}
	if f.Path == "" {
		return errors.New("figure path required")
	}

	p, err := r.build(f)
	if err != nil {
		return fmt.Errorf("failed to build plot: %s: %w", f.Path, err)
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("failed to create dir: %s: %w", dir, err)
		}
	}

	if err := p.Save(r.Width, r.Height, f.Path); err != nil {
		return fmt.Errorf("failed to save plot: %s: %w", f.Path, err)
	}

	slog.Debug("plot saved", "path", f.Path, "lines", len(f.Lines))
	return nil
}

func (r *PNGRenderer) build(f *Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Signal"
	p.BackgroundColor = colornames.White

	grid := plotter.NewGrid()
	grid.Vertical.Color = colornames.Lightgray
	grid.Horizontal.Color = colornames.Lightgray
	p.Add(grid)

	for i, l := range f.Lines {
		segs := segments(l.Values)
		if len(segs) == 0 {
			slog.Warn("skipping series without finite values", "label", l.Label, "path", f.Path)
			continue
		}

		c := fade(plotutil.Color(i), r.Alpha)
		for j, pts := range segs {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("invalid series %q: %w", l.Label, err)
			}
			line.Color = c

			p.Add(line)
			if j == 0 {
				p.Legend.Add(l.Label, line)
			}
		}
	}

	p.Legend.Top = true
	return p, nil
}

// segments plots values against their 0-based position, splitting the
// line wherever a value is NaN or infinite so those samples show as gaps.
func segments(values series.Series) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(i), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func fade(c color.Color, alpha float64) color.Color {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
