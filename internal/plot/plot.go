// Package plot renders simulation output to PNG for the plotting edge.
// The core only hands over its finite sample sequences; nothing here
// feeds back into the simulation.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Potatov1/potato-cannon-sim/internal/firing"
	"github.com/Potatov1/potato-cannon-sim/internal/trajectory"
)

// RangeCurvePNG writes a range-vs-angle curve to path.
func RangeCurvePNG(points []firing.CurvePoint, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("plot: no curve points to render")
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.AngleDeg
		xys[i].Y = pt.Range
	}

	p := plot.New()
	p.Title.Text = "Range vs. Launch Angle"
	p.X.Label.Text = "Launch angle (deg)"
	p.Y.Label.Text = "Range (m)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("plot: building range curve: %w", err)
	}
	p.Add(line)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving %s: %w", path, err)
	}
	return nil
}

// TrajectoryProfilePNG writes the downrange-vs-altitude profile of one
// flight to path.
func TrajectoryProfilePNG(samples []trajectory.Sample, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("plot: no trajectory samples to render")
	}

	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = s.Position.X
		xys[i].Y = s.Position.Z
	}

	p := plot.New()
	p.Title.Text = "Trajectory Profile"
	p.X.Label.Text = "Downrange (m)"
	p.Y.Label.Text = "Altitude (m)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("plot: building trajectory profile: %w", err)
	}
	p.Add(line)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving %s: %w", path, err)
	}
	return nil
}
