package airframe

import "github.com/san-kum/quadsim/internal/cascade"

// Model is the toy plant the control loop flies against: position and
// attitude relax toward their targets at fixed first-order rates. It stands
// in for real rigid-body dynamics, which are out of scope here.
type Model struct {
	PosRate float64 // 1/s
	AttRate float64 // 1/s
}

func New() *Model {
	return &Model{PosRate: 0.1, AttRate: 0.2}
}

// Step advances the state by dt and returns the new position and attitude.
func (m *Model) Step(pos, att, targetPos, targetAtt cascade.Vector3, dt float64) (cascade.Vector3, cascade.Vector3) {
	pos = pos.Add(targetPos.Sub(pos).Scale(m.PosRate * dt))
	att = att.Add(targetAtt.Sub(att).Scale(m.AttRate * dt))
	return pos, att
}
