package airframe

import (
	"math"
	"testing"

	"github.com/san-kum/quadsim/internal/cascade"
)

func TestStepMovesTowardTarget(t *testing.T) {
	m := New()

	pos := cascade.Vector3{X: 0, Y: 0, Z: 0}
	att := cascade.Vector3{X: 5, Y: -5, Z: 10}
	targetPos := cascade.Vector3{X: 0, Y: 0, Z: 5}
	targetAtt := cascade.Vector3{}

	newPos, newAtt := m.Step(pos, att, targetPos, targetAtt, 0.02)

	if newPos.Z <= pos.Z {
		t.Errorf("altitude should rise toward target, got %f", newPos.Z)
	}
	if math.Abs(newAtt.X) >= math.Abs(att.X) {
		t.Errorf("roll should decay toward target, got %f", newAtt.X)
	}
}

func TestStepConverges(t *testing.T) {
	m := New()

	pos := cascade.Vector3{X: 0.5, Y: -0.3, Z: 0}
	att := cascade.Vector3{X: 2.0, Y: -1.5, Z: 5.0}
	targetPos := cascade.Vector3{X: 0, Y: 0, Z: 5}
	targetAtt := cascade.Vector3{}

	dt := 0.02
	for i := 0; i < 50000; i++ {
		pos, att = m.Step(pos, att, targetPos, targetAtt, dt)
	}

	if math.Abs(pos.Z-5.0) > 0.01 {
		t.Errorf("altitude did not converge: %f", pos.Z)
	}
	if math.Abs(att.Z) > 0.01 {
		t.Errorf("yaw did not converge: %f", att.Z)
	}
}

func TestStepFixedPoint(t *testing.T) {
	m := New()

	target := cascade.Vector3{X: 1, Y: 2, Z: 3}
	pos, att := m.Step(target, target, target, target, 0.02)

	if pos != target || att != target {
		t.Errorf("on-target state should not move: pos=%v att=%v", pos, att)
	}
}
