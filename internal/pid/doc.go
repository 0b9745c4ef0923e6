// Package pid implements a single-axis PID controller with saturating
// anti-windup.
//
// The controller is a plain state machine: every [Controller.Update] is one
// deterministic transition of {integral, previous error, last output}. The
// guards are all clamps rather than errors:
//
//   - dt is bounded to [0.001, 0.1] seconds
//   - the integral is bounded to ±IMax after accumulation
//   - the output is bounded to ±OutMax
//
// # Time sources
//
// When the caller has no dt of its own, [Controller.UpdateAuto] derives one
// from the clock injected at construction:
//
//	clk := clock.NewMock()
//	c := pid.NewWithClock(params, clk)
//	c.UpdateAuto(err) // returns 0, records the baseline
//	clk.Add(20 * time.Millisecond)
//	c.UpdateAuto(err) // integrates with dt = 0.02
//
// The first auto call establishes a baseline and returns 0 so the derivative
// never sees an undefined previous sample.
package pid
