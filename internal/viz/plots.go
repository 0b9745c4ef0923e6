package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/sim"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// PlotResult renders actual-vs-target charts per axis and the four motor
// traces as terminal graphs.
func PlotResult(w io.Writer, res *sim.Result) {
	if len(res.Times) == 0 {
		fmt.Fprintln(w, "no data to plot")
		return
	}

	posAxes := []struct {
		name string
		pick func(v cascade.Vector3) float64
	}{
		{"x position", func(v cascade.Vector3) float64 { return v.X }},
		{"y position", func(v cascade.Vector3) float64 { return v.Y }},
		{"z position", func(v cascade.Vector3) float64 { return v.Z }},
	}
	for _, axis := range posAxes {
		plotPair(w, axis.name, res.Positions, res.TargetPos, axis.pick)
	}

	attAxes := []struct {
		name string
		pick func(v cascade.Vector3) float64
	}{
		{"roll (deg)", func(v cascade.Vector3) float64 { return v.X }},
		{"pitch (deg)", func(v cascade.Vector3) float64 { return v.Y }},
		{"yaw (deg)", func(v cascade.Vector3) float64 { return v.Z }},
	}
	for _, axis := range attAxes {
		plotPair(w, axis.name, res.Attitudes, res.TargetAtt, axis.pick)
	}

	motors := make([][]float64, 4)
	for m := range motors {
		motors[m] = make([]float64, len(res.Motors))
		for i, cmd := range res.Motors {
			motors[m][i] = cmd[m]
		}
	}
	graph := asciigraph.PlotMany(motors,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("motors FL/FR/RR/RL [0-1]"),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}

// plotPair draws the actual series against its target.
func plotPair(w io.Writer, caption string, actual, target []cascade.Vector3, pick func(cascade.Vector3) float64) {
	data := [][]float64{
		make([]float64, len(actual)),
		make([]float64, len(target)),
	}
	for i := range actual {
		data[0][i] = pick(actual[i])
	}
	for i := range target {
		data[1][i] = pick(target[i])
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption+" (actual vs target)"),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}
