package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
)

// Component extracts one state component of a trajectory as a series.
func Component(traj *rk.Trajectory[ode.Vector], idx int) ([]float64, error) {
	if len(traj.Values) == 0 {
		return nil, fmt.Errorf("viz: empty trajectory")
	}
	if idx < 0 || idx >= len(traj.Values[0]) {
		return nil, fmt.Errorf("viz: component %d out of range (state dim %d)", idx, len(traj.Values[0]))
	}
	series := make([]float64, len(traj.Values))
	for i, y := range traj.Values {
		series[i] = y[idx]
	}
	return series, nil
}

// Plot renders one state component as an asciigraph line chart.
func Plot(traj *rk.Trajectory[ode.Vector], idx, width, height int, caption string) (string, error) {
	series, err := Component(traj, idx)
	if err != nil {
		return "", err
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}

// PlotAll renders every state component onto one chart.
func PlotAll(traj *rk.Trajectory[ode.Vector], width, height int, caption string) (string, error) {
	if len(traj.Values) == 0 {
		return "", fmt.Errorf("viz: empty trajectory")
	}
	dim := len(traj.Values[0])
	series := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		s, err := Component(traj, i)
		if err != nil {
			return "", err
		}
		series[i] = s
	}
	return asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	), nil
}

// PhasePortrait draws component xIdx against component yIdx on a braille
// canvas, autoscaled to the data's bounding box.
func PhasePortrait(traj *rk.Trajectory[ode.Vector], xIdx, yIdx, width, height int) (string, error) {
	xs, err := Component(traj, xIdx)
	if err != nil {
		return "", err
	}
	ys, err := Component(traj, yIdx)
	if err != nil {
		return "", err
	}

	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(ys)
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	c := NewCanvas(width, height)
	maxX := float64(width*2 - 1)
	maxY := float64(height*4 - 1)

	px, py := -1, -1
	for i := range xs {
		x := int((xs[i] - xMin) / (xMax - xMin) * maxX)
		// Flip y so larger values render higher.
		y := int((yMax - ys[i]) / (yMax - yMin) * maxY)
		if px >= 0 {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
	}
	return c.String(), nil
}

func bounds(s []float64) (min, max float64) {
	min, max = s[0], s[0]
	for _, v := range s[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
