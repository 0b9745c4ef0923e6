package cascade

import (
	"github.com/san-kum/quadsim/internal/mixer"
	"github.com/san-kum/quadsim/internal/pid"
)

// Position axis indices.
const (
	AxisX = iota
	AxisY
	AxisZ
)

// Attitude axis indices.
const (
	AxisRoll = iota
	AxisPitch
	AxisYaw
)

// Vector3 is an (x, y, z) position triple or a (roll, pitch, yaw) attitude
// triple in degrees.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Coupling maps outer-loop position outputs onto inner-loop attitude
// setpoints. Gain is degrees of tilt per unit of position output, MaxTilt
// bounds the commanded setpoint in degrees.
type Coupling struct {
	Gain    float64
	MaxTilt float64
}

func DefaultCoupling() Coupling {
	return Coupling{Gain: 0.1, MaxTilt: 30.0}
}

// Config holds the per-axis controller parameters and the coupling law.
type Config struct {
	Position [3]pid.Params // x, y, z
	Attitude [3]pid.Params // roll, pitch, yaw
	Coupling Coupling
}

// DefaultConfig returns the stock hover tune.
func DefaultConfig() Config {
	return Config{
		Position: [3]pid.Params{
			{Kp: 1.0, Ki: 0.1, Kd: 0.5, IMax: 10.0, OutMax: 10.0},
			{Kp: 1.0, Ki: 0.1, Kd: 0.5, IMax: 10.0, OutMax: 10.0},
			{Kp: 2.0, Ki: 0.2, Kd: 0.8, IMax: 10.0, OutMax: 15.0},
		},
		Attitude: [3]pid.Params{
			{Kp: 2.0, Ki: 0.5, Kd: 0.3, IMax: 10.0, OutMax: 45.0},
			{Kp: 2.0, Ki: 0.5, Kd: 0.3, IMax: 10.0, OutMax: 45.0},
			{Kp: 1.5, Ki: 0.3, Kd: 0.2, IMax: 10.0, OutMax: 60.0},
		},
		Coupling: DefaultCoupling(),
	}
}

// Snapshot is the per-tick debug record. Produced fresh on every update and
// never retained by the cascade.
type Snapshot struct {
	PosErrors  Vector3
	AttErrors  Vector3
	PosOutputs [3]float64
	AttOutputs [3]float64
	Motors     mixer.MotorCommand
}

// Cascade chains a position loop into an attitude loop and mixes the result
// into motor commands. Not safe for concurrent use; one caller per instance.
type Cascade struct {
	pos      [3]*pid.Controller
	att      [3]*pid.Controller
	coupling Coupling
	mix      *mixer.Mixer

	targetPos Vector3
	targetAtt Vector3
}

// New builds a cascade from cfg. The mixer normalization is derived from the
// attitude OutMax values so the two can never drift apart.
func New(cfg Config) *Cascade {
	c := &Cascade{coupling: cfg.Coupling}
	for i := range c.pos {
		c.pos[i] = pid.New(cfg.Position[i])
	}
	for i := range c.att {
		c.att[i] = pid.New(cfg.Attitude[i])
	}
	c.mix = mixer.New(
		cfg.Attitude[AxisRoll].OutMax,
		cfg.Attitude[AxisPitch].OutMax,
		cfg.Attitude[AxisYaw].OutMax,
	)
	return c
}

func (c *Cascade) SetTargetPosition(x, y, z float64) {
	c.targetPos = Vector3{x, y, z}
}

func (c *Cascade) SetTargetAttitude(roll, pitch, yaw float64) {
	c.targetAtt = Vector3{roll, pitch, yaw}
}

func (c *Cascade) TargetPosition() Vector3 { return c.targetPos }
func (c *Cascade) TargetAttitude() Vector3 { return c.targetAtt }

// Update runs one two-stage control step: position errors drive the outer
// loop, its output tilts the attitude setpoint, the inner loop tracks that
// setpoint, and the mixer turns the result into motor commands.
func (c *Cascade) Update(pos, att Vector3, dt float64) (mixer.MotorCommand, Snapshot) {
	posErr := c.targetPos.Sub(pos)

	var posOut [3]float64
	posOut[AxisX] = c.pos[AxisX].Update(posErr.X, dt)
	posOut[AxisY] = c.pos[AxisY].Update(posErr.Y, dt)
	posOut[AxisZ] = c.pos[AxisZ].Update(posErr.Z, dt)

	// Approximate tilt-to-translate coupling: a y correction is flown by
	// rolling, an x correction by pitching. Yaw is not position-coupled and
	// passes straight through from the attitude target.
	setpoint := Vector3{
		X: clamp(posOut[AxisY]*c.coupling.Gain, -c.coupling.MaxTilt, c.coupling.MaxTilt),
		Y: clamp(posOut[AxisX]*c.coupling.Gain, -c.coupling.MaxTilt, c.coupling.MaxTilt),
		Z: c.targetAtt.Z,
	}

	attErr := setpoint.Sub(att)

	var attOut [3]float64
	attOut[AxisRoll] = c.att[AxisRoll].Update(attErr.X, dt)
	attOut[AxisPitch] = c.att[AxisPitch].Update(attErr.Y, dt)
	attOut[AxisYaw] = c.att[AxisYaw].Update(attErr.Z, dt)

	motors := c.mix.Mix(attOut[AxisRoll], attOut[AxisPitch], attOut[AxisYaw], posOut[AxisZ])

	snap := Snapshot{
		PosErrors:  posErr,
		AttErrors:  attErr,
		PosOutputs: posOut,
		AttOutputs: attOut,
		Motors:     motors,
	}
	return motors, snap
}

// Reset clears all six axis controllers. Targets are left in place.
func (c *Cascade) Reset() {
	for i := range c.pos {
		c.pos[i].Reset()
	}
	for i := range c.att {
		c.att[i].Reset()
	}
}

// ResetPosition clears a single position axis controller.
func (c *Cascade) ResetPosition(axis int) {
	c.pos[axis].Reset()
}

// ResetAttitude clears a single attitude axis controller.
func (c *Cascade) ResetAttitude(axis int) {
	c.att[axis].Reset()
}

// DebugPosition returns the state snapshot of one position axis controller.
func (c *Cascade) DebugPosition(axis int) pid.Snapshot {
	return c.pos[axis].Debug()
}

// DebugAttitude returns the state snapshot of one attitude axis controller.
func (c *Cascade) DebugAttitude(axis int) pid.Snapshot {
	return c.att[axis].Debug()
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
