package metrics

import (
	"math"

	"github.com/san-kum/quadsim/internal/cascade"
)

// ControlEffort measures mean motor deviation from mid throttle. Hover costs
// nothing by this measure; fighting an error costs more.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(snap cascade.Snapshot, t float64) {
	for _, v := range snap.Motors {
		c.sum += math.Abs(v - 0.5)
	}
	c.samples += len(snap.Motors)
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// TrackingError is the RMS of the position error norm over a run.
type TrackingError struct {
	sumSq   float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{}
}

func (e *TrackingError) Name() string { return "tracking_rms" }

func (e *TrackingError) Observe(snap cascade.Snapshot, t float64) {
	p := snap.PosErrors
	e.sumSq += p.X*p.X + p.Y*p.Y + p.Z*p.Z
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return math.Sqrt(e.sumSq / float64(e.samples))
}

func (e *TrackingError) Reset() {
	e.sumSq = 0
	e.samples = 0
}

// Saturation counts the fraction of ticks with at least one motor pinned at
// either end of its range.
type Saturation struct {
	hits    int
	samples int
}

func NewSaturation() *Saturation {
	return &Saturation{}
}

func (s *Saturation) Name() string { return "motor_saturation" }

func (s *Saturation) Observe(snap cascade.Snapshot, t float64) {
	s.samples++
	for _, v := range snap.Motors {
		if v <= 0 || v >= 1 {
			s.hits++
			break
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.hits = 0
	s.samples = 0
}
