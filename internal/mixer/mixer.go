package mixer

// Motor indices in command order.
const (
	FrontLeft = iota
	FrontRight
	RearRight
	RearLeft
)

// MotorCommand holds one throttle command per rotor, each in [0, 1].
type MotorCommand [4]float64

// Mixer maps roll/pitch/yaw/throttle control outputs onto the four rotors of
// an X-configuration frame. The normalization limits must equal the OutMax of
// the attitude controllers feeding it, or the attitude outputs are scaled
// inconsistently.
type Mixer struct {
	rollMax  float64
	pitchMax float64
	yawMax   float64
}

func New(rollMax, pitchMax, yawMax float64) *Mixer {
	// A zero limit would divide out; treat it as unscaled.
	if rollMax <= 0 {
		rollMax = 1
	}
	if pitchMax <= 0 {
		pitchMax = 1
	}
	if yawMax <= 0 {
		yawMax = 1
	}
	return &Mixer{rollMax: rollMax, pitchMax: pitchMax, yawMax: yawMax}
}

// Mix combines the attitude-loop outputs and the vertical position output
// into motor commands. throttle is centered on mid stick: the z controller
// holds near zero at hover, so +0.5 puts hover at half throttle.
func (m *Mixer) Mix(rollOut, pitchOut, yawOut, throttleOut float64) MotorCommand {
	base := clamp(throttleOut+0.5, 0, 1)

	roll := rollOut / m.rollMax
	pitch := pitchOut / m.pitchMax
	yaw := yawOut / m.yawMax

	var cmd MotorCommand
	cmd[FrontLeft] = clamp(base+pitch-roll+yaw, 0, 1)
	cmd[FrontRight] = clamp(base+pitch+roll-yaw, 0, 1)
	cmd[RearRight] = clamp(base-pitch+roll+yaw, 0, 1)
	cmd[RearLeft] = clamp(base-pitch-roll-yaw, 0, 1)
	return cmd
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
