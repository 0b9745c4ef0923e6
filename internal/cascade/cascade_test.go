package cascade_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/pid"
)

var _ = Describe("Cascade", func() {
	var c *cascade.Cascade

	BeforeEach(func() {
		c = cascade.New(cascade.DefaultConfig())
	})

	Describe("hover equilibrium", func() {
		It("commands mid throttle on all motors when already on target", func() {
			c.SetTargetPosition(0, 0, 5)
			c.SetTargetAttitude(0, 0, 0)

			motors, snap := c.Update(cascade.Vector3{X: 0, Y: 0, Z: 5}, cascade.Vector3{}, 0.02)

			Expect(snap.PosErrors).To(Equal(cascade.Vector3{}))
			Expect(snap.AttErrors).To(Equal(cascade.Vector3{}))
			for i := range motors {
				Expect(motors[i]).To(Equal(0.5))
			}
		})
	})

	Describe("targets", func() {
		It("persist across ticks until set again", func() {
			c.SetTargetPosition(1, 2, 3)
			c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			Expect(c.TargetPosition()).To(Equal(cascade.Vector3{X: 1, Y: 2, Z: 3}))

			c.SetTargetPosition(4, 5, 6)
			Expect(c.TargetPosition()).To(Equal(cascade.Vector3{X: 4, Y: 5, Z: 6}))
		})
	})

	Describe("position to attitude coupling", func() {
		It("passes the yaw target straight through", func() {
			c.SetTargetAttitude(0, 0, 20)
			_, snap := c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			Expect(snap.AttErrors.Z).To(Equal(20.0))
		})

		It("clamps the commanded tilt to the coupling limit", func() {
			cfg := cascade.DefaultConfig()
			cfg.Coupling = cascade.Coupling{Gain: 10.0, MaxTilt: 30.0}
			c = cascade.New(cfg)

			// Large lateral error saturates the y controller at OutMax=10,
			// which times the gain would command 100 degrees of roll.
			c.SetTargetPosition(0, 100, 0)
			_, snap := c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			Expect(snap.AttErrors.X).To(Equal(30.0))
		})

		It("tilts toward the lateral error", func() {
			c.SetTargetPosition(5, 0, 0)
			_, snap := c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			// x error commands pitch, not roll.
			Expect(snap.AttErrors.Y).To(BeNumerically(">", 0))
			Expect(snap.AttErrors.X).To(BeZero())
		})
	})

	Describe("motor command invariant", func() {
		It("keeps every component in [0, 1] under aggressive targets", func() {
			c.SetTargetPosition(100, -100, 50)
			c.SetTargetAttitude(45, -45, 180)

			pos := cascade.Vector3{X: -10, Y: 10, Z: 0}
			att := cascade.Vector3{X: 20, Y: -20, Z: -90}
			for i := 0; i < 200; i++ {
				motors, _ := c.Update(pos, att, 0.02)
				for m := range motors {
					Expect(motors[m]).To(BeNumerically(">=", 0))
					Expect(motors[m]).To(BeNumerically("<=", 1))
				}
			}
		})
	})

	Describe("reset", func() {
		It("returns every axis controller to its initial state", func() {
			c.SetTargetPosition(3, 3, 3)
			for i := 0; i < 50; i++ {
				c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			}
			c.Reset()

			for axis := cascade.AxisX; axis <= cascade.AxisZ; axis++ {
				Expect(c.DebugPosition(axis)).To(Equal(pid.Snapshot{}))
			}
			for axis := cascade.AxisRoll; axis <= cascade.AxisYaw; axis++ {
				Expect(c.DebugAttitude(axis)).To(Equal(pid.Snapshot{}))
			}
		})

		It("clears a single axis without touching the others", func() {
			c.SetTargetPosition(3, 3, 3)
			for i := 0; i < 50; i++ {
				c.Update(cascade.Vector3{}, cascade.Vector3{}, 0.02)
			}
			c.ResetPosition(cascade.AxisZ)

			Expect(c.DebugPosition(cascade.AxisZ)).To(Equal(pid.Snapshot{}))
			Expect(c.DebugPosition(cascade.AxisX)).NotTo(Equal(pid.Snapshot{}))
		})

		It("leaves targets in place", func() {
			c.SetTargetPosition(1, 1, 1)
			c.Reset()
			Expect(c.TargetPosition()).To(Equal(cascade.Vector3{X: 1, Y: 1, Z: 1}))
		})
	})
})
