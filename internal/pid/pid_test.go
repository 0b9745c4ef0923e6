package pid

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestPureProportional(t *testing.T) {
	c := New(Params{Kp: 1.0, IMax: 10.0, OutMax: 10.0})

	if out := c.Update(5.0, 0.02); out != 5.0 {
		t.Errorf("expected 5.0, got %f", out)
	}
	if out := c.Update(20.0, 0.02); out != 10.0 {
		t.Errorf("expected saturated output 10.0, got %f", out)
	}
	if out := c.Update(-20.0, 0.02); out != -10.0 {
		t.Errorf("expected saturated output -10.0, got %f", out)
	}
}

func TestAntiWindup(t *testing.T) {
	c := New(Params{Kp: 1.0, Ki: 1.0, IMax: 2.0, OutMax: 100.0})

	for i := 0; i < 500; i++ {
		c.Update(50.0, 0.1)
		if integ := c.Debug().Integral; math.Abs(integ) > 2.0 {
			t.Fatalf("integral escaped bounds at step %d: %f", i, integ)
		}
	}

	for i := 0; i < 500; i++ {
		c.Update(-50.0, 0.1)
		if integ := c.Debug().Integral; math.Abs(integ) > 2.0 {
			t.Fatalf("integral escaped bounds at step %d: %f", i, integ)
		}
	}
}

func TestDtClamped(t *testing.T) {
	p := Params{Kp: 1.0, Ki: 0.5, Kd: 0.2, IMax: 10.0, OutMax: 100.0}

	a, b := New(p), New(p)
	if outA, outB := a.Update(3.0, 50.0), b.Update(3.0, 0.1); outA != outB {
		t.Errorf("dt=50 should behave as dt=0.1: %f vs %f", outA, outB)
	}

	a, b = New(p), New(p)
	if outA, outB := a.Update(3.0, 0.0), b.Update(3.0, 0.001); outA != outB {
		t.Errorf("dt=0 should behave as dt=0.001: %f vs %f", outA, outB)
	}

	a, b = New(p), New(p)
	if outA, outB := a.Update(3.0, -1.0), b.Update(3.0, 0.001); outA != outB {
		t.Errorf("negative dt should behave as dt=0.001: %f vs %f", outA, outB)
	}
}

func TestColdStart(t *testing.T) {
	mock := clock.NewMock()
	c := NewWithClock(Params{Kp: 5.0, Ki: 1.0, Kd: 1.0, IMax: 10.0, OutMax: 100.0}, mock)

	if out := c.UpdateAuto(7.0); out != 0.0 {
		t.Errorf("first auto update should return 0.0, got %f", out)
	}

	snap := c.Debug()
	if snap.Integral != 0 || snap.PrevError != 0 {
		t.Errorf("cold start must not touch state: %+v", snap)
	}
}

func TestAutoDtMatchesExplicit(t *testing.T) {
	p := Params{Kp: 1.0, Ki: 0.5, Kd: 0.3, IMax: 10.0, OutMax: 100.0}
	mock := clock.NewMock()

	auto := NewWithClock(p, mock)
	manual := New(p)

	auto.UpdateAuto(2.0) // baseline
	mock.Add(20 * time.Millisecond)

	outAuto := auto.UpdateAuto(2.0)
	outManual := manual.Update(2.0, 0.02)

	if math.Abs(outAuto-outManual) > 1e-12 {
		t.Errorf("auto dt output %f != explicit dt output %f", outAuto, outManual)
	}
}

func TestDerivative(t *testing.T) {
	c := New(Params{Kd: 1.0, IMax: 10.0, OutMax: 100.0})

	// prevErr starts at 0, so a unit error over 0.1s differentiates to 10.
	if out := c.Update(1.0, 0.1); out != 10.0 {
		t.Errorf("expected derivative output 10.0, got %f", out)
	}
	// Unchanged error, zero derivative.
	if out := c.Update(1.0, 0.1); out != 0.0 {
		t.Errorf("expected zero derivative output, got %f", out)
	}
}

func TestResetEquivalence(t *testing.T) {
	p := Params{Kp: 2.0, Ki: 0.5, Kd: 0.3, IMax: 5.0, OutMax: 50.0}

	used := New(p)
	for i := 0; i < 10; i++ {
		used.Update(float64(i), 0.02)
	}
	used.Reset()

	fresh := New(p)
	if used.Debug() != fresh.Debug() {
		t.Errorf("reset state %+v differs from fresh state %+v", used.Debug(), fresh.Debug())
	}

	// The clock baseline is cleared too: next auto update is a cold start.
	mock := clock.NewMock()
	c := NewWithClock(p, mock)
	c.UpdateAuto(1.0)
	mock.Add(time.Second)
	c.UpdateAuto(1.0)
	c.Reset()
	if out := c.UpdateAuto(1.0); out != 0.0 {
		t.Errorf("auto update after reset should cold start, got %f", out)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Kp != 0 || p.Ki != 0 || p.Kd != 0 {
		t.Errorf("default gains should be zero: %+v", p)
	}
	if p.IMax != 10.0 || p.OutMax != 100.0 {
		t.Errorf("unexpected default limits: %+v", p)
	}
}
