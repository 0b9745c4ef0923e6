package pid

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timestep bounds. A stalled caller or a clock anomaly must not turn into a
// huge integration step or a divide-by-zero derivative.
const (
	minDt = 0.001
	maxDt = 0.1
)

// Params holds the gains and limits for one control axis. Immutable once a
// controller is built from it.
type Params struct {
	Kp     float64
	Ki     float64
	Kd     float64
	IMax   float64
	OutMax float64
}

// DefaultParams returns zero gains with the standard limits.
func DefaultParams() Params {
	return Params{IMax: 10.0, OutMax: 100.0}
}

// Controller is a single-axis PID with clamped integral and saturated output.
// Not safe for concurrent use; one caller per instance.
type Controller struct {
	params     Params
	clk        clock.Clock
	integral   float64
	prevErr    float64
	prevTime   time.Time
	hasTime    bool
	lastOutput float64
}

func New(p Params) *Controller {
	return NewWithClock(p, clock.New())
}

// NewWithClock builds a controller with an explicit time source, used by
// UpdateAuto. Tests pass a mock clock for deterministic dt.
func NewWithClock(p Params, clk clock.Clock) *Controller {
	return &Controller{params: p, clk: clk}
}

func (c *Controller) Params() Params { return c.params }

// Update advances the controller one step and returns the control output.
// dt is clamped to [minDt, maxDt] before use.
func (c *Controller) Update(err, dt float64) float64 {
	dt = clamp(dt, minDt, maxDt)

	c.integral += err * dt
	c.integral = clamp(c.integral, -c.params.IMax, c.params.IMax)

	derivative := 0.0
	if dt > 1e-6 {
		derivative = (err - c.prevErr) / dt
	}

	out := c.params.Kp*err + c.params.Ki*c.integral + c.params.Kd*derivative
	out = clamp(out, -c.params.OutMax, c.params.OutMax)

	c.prevErr = err
	c.lastOutput = out
	return out
}

// UpdateAuto derives dt from the controller's clock. The first call only
// records a baseline and returns 0, so a half-defined previous sample never
// feeds the derivative term.
func (c *Controller) UpdateAuto(err float64) float64 {
	now := c.clk.Now()
	if !c.hasTime {
		c.prevTime = now
		c.hasTime = true
		return 0.0
	}
	dt := now.Sub(c.prevTime).Seconds()
	c.prevTime = now
	return c.Update(err, dt)
}

// Reset returns the controller to its freshly constructed state.
func (c *Controller) Reset() {
	c.integral = 0
	c.prevErr = 0
	c.lastOutput = 0
	c.hasTime = false
	c.prevTime = time.Time{}
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	Integral   float64
	PrevError  float64
	LastOutput float64
}

func (c *Controller) Debug() Snapshot {
	return Snapshot{
		Integral:   c.integral,
		PrevError:  c.prevErr,
		LastOutput: c.lastOutput,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
