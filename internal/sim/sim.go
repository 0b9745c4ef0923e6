package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/quadsim/internal/airframe"
	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/mixer"
)

type Config struct {
	Dt       float64
	Duration float64
}

// Waypoint re-targets the cascade once the run clock reaches At. Nil fields
// leave the corresponding target untouched.
type Waypoint struct {
	At       float64
	Position *cascade.Vector3
	Attitude *cascade.Vector3
}

// Observer is called once per tick with the state fed to the cascade and the
// snapshot it produced.
type Observer interface {
	OnStep(pos, att cascade.Vector3, snap cascade.Snapshot, t float64)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(snap cascade.Snapshot, t float64)
	Value() float64
	Reset()
}

// Result is the recorded history of one run.
type Result struct {
	Times     []float64
	Positions []cascade.Vector3
	Attitudes []cascade.Vector3
	TargetPos []cascade.Vector3
	TargetAtt []cascade.Vector3
	Motors    []mixer.MotorCommand
	Snapshots []cascade.Snapshot
	Metrics   map[string]float64
}

// Runner drives the cascade against the toy airframe at a fixed rate. The
// cadence is simulated time only; Run never sleeps.
type Runner struct {
	cascade   *cascade.Cascade
	plant     *airframe.Model
	metrics   []Metric
	observers []Observer
	waypoints []Waypoint
}

func New(c *cascade.Cascade, plant *airframe.Model) *Runner {
	return &Runner{cascade: c, plant: plant}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }
func (r *Runner) AddWaypoint(w Waypoint) { r.waypoints = append(r.waypoints, w) }

func (r *Runner) Cascade() *cascade.Cascade { return r.cascade }

// Run executes the control loop from the given initial state and returns the
// recorded history. The context cancels a run early; whatever was recorded so
// far is returned with the error.
func (r *Runner) Run(ctx context.Context, pos, att cascade.Vector3, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:     make([]float64, 0, steps),
		Positions: make([]cascade.Vector3, 0, steps),
		Attitudes: make([]cascade.Vector3, 0, steps),
		TargetPos: make([]cascade.Vector3, 0, steps),
		TargetAtt: make([]cascade.Vector3, 0, steps),
		Motors:    make([]mixer.MotorCommand, 0, steps),
		Snapshots: make([]cascade.Snapshot, 0, steps),
		Metrics:   make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	pending := make([]Waypoint, len(r.waypoints))
	copy(pending, r.waypoints)
	sort.Slice(pending, func(i, j int) bool { return pending[i].At < pending[j].At })

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt

		for len(pending) > 0 && pending[0].At <= t {
			if p := pending[0].Position; p != nil {
				r.cascade.SetTargetPosition(p.X, p.Y, p.Z)
			}
			if a := pending[0].Attitude; a != nil {
				r.cascade.SetTargetAttitude(a.X, a.Y, a.Z)
			}
			pending = pending[1:]
		}

		motors, snap := r.cascade.Update(pos, att, cfg.Dt)

		for _, m := range r.metrics {
			m.Observe(snap, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(pos, att, snap, t)
		}

		result.Times = append(result.Times, t)
		result.Positions = append(result.Positions, pos)
		result.Attitudes = append(result.Attitudes, att)
		result.TargetPos = append(result.TargetPos, r.cascade.TargetPosition())
		result.TargetAtt = append(result.TargetAtt, r.cascade.TargetAttitude())
		result.Motors = append(result.Motors, motors)
		result.Snapshots = append(result.Snapshots, snap)

		pos, att = r.plant.Step(pos, att, r.cascade.TargetPosition(), r.cascade.TargetAttitude(), cfg.Dt)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
