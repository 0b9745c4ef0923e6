package tuner

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/san-kum/quadsim/internal/sim"
)

// Advice is a suggested starting tune for one scenario.
type Advice struct {
	Scenario string
	Lines    []string
}

var advices = map[string]Advice{
	"hover": {
		Scenario: "hover",
		Lines: []string{
			"z axis: kp=2.0, ki=0.2, kd=0.8",
			"attitude: kp=2.0, ki=0.5, kd=0.3",
		},
	},
	"step": {
		Scenario: "step response",
		Lines: []string{
			"position: kp=1.5, ki=0.1, kd=0.5",
			"attitude: kp=2.5, ki=0.3, kd=0.4",
		},
	},
	"tracking": {
		Scenario: "trajectory tracking",
		Lines: []string{
			"position: kp=1.2, ki=0.15, kd=0.6",
			"attitude: kp=2.0, ki=0.4, kd=0.35",
		},
	},
}

// Scenarios lists the scenarios Advise knows about.
func Scenarios() []string {
	return []string{"hover", "step", "tracking"}
}

// Advise prints suggested starting gains for a scenario.
func Advise(w io.Writer, scenario string) error {
	a, ok := advices[scenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q (available: %v)", scenario, Scenarios())
	}
	fmt.Fprintf(w, "scenario: %s\n", a.Scenario)
	fmt.Fprintln(w, "suggested starting gains:")
	for _, line := range a.Lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}

// AxisStats summarizes tracking quality on one position axis.
type AxisStats struct {
	RMS float64
	Max float64
}

// Analyze computes per-axis RMS and peak position errors from a run.
func Analyze(res *sim.Result) [3]AxisStats {
	var sumSq, maxAbs [3]float64

	for _, snap := range res.Snapshots {
		errs := [3]float64{snap.PosErrors.X, snap.PosErrors.Y, snap.PosErrors.Z}
		for i, e := range errs {
			sumSq[i] += e * e
			if a := math.Abs(e); a > maxAbs[i] {
				maxAbs[i] = a
			}
		}
	}

	var stats [3]AxisStats
	n := float64(len(res.Snapshots))
	for i := range stats {
		if n > 0 {
			stats[i].RMS = math.Sqrt(sumSq[i] / n)
		}
		stats[i].Max = maxAbs[i]
	}
	return stats
}

// Report writes the per-axis analysis as a table.
func Report(w io.Writer, res *sim.Result) error {
	if len(res.Snapshots) == 0 {
		fmt.Fprintln(w, "no data to analyze")
		return nil
	}

	stats := Analyze(res)
	names := [3]string{"x", "y", "z"}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AXIS\tRMS ERROR\tMAX ERROR")
	for i, s := range stats {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", names[i], s.RMS, s.Max)
	}
	return tw.Flush()
}
