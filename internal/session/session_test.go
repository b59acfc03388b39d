package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/session"
	"github.com/san-kum/sandfall/internal/sim"
)

var _ = Describe("Session", func() {
	var (
		g *grid.Grid
		s *session.Session
	)

	BeforeEach(func() {
		g = grid.New(39)
		s = session.New(g, sim.New())
	})

	It("starts stopped with the emitter centred", func() {
		Expect(s.State()).To(Equal(session.Stopped))
		Expect(s.Emitter()).To(Equal(19))
		Expect(s.Particle().InFlight).To(BeFalse())
	})

	Describe("transition table", func() {
		DescribeTable("every command is accepted from every state",
			func(from session.State, cmd session.Command, want session.State) {
				got, ok := session.Next(from, cmd)
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(want))
			},
			Entry("stopped + play", session.Stopped, session.Play, session.Playing),
			Entry("stopped + pause", session.Stopped, session.Pause, session.Paused),
			Entry("stopped + stop", session.Stopped, session.Stop, session.Stopped),
			Entry("paused + play", session.Paused, session.Play, session.Playing),
			Entry("paused + stop", session.Paused, session.Stop, session.Stopped),
			Entry("playing + pause", session.Playing, session.Pause, session.Paused),
			Entry("playing + stop", session.Playing, session.Stop, session.Stopped),
			Entry("playing + play", session.Playing, session.Play, session.Playing),
		)

		It("reports transitions but not self-loops", func() {
			var seen []string
			s.OnTransition(func(from, to session.State) {
				seen = append(seen, from.String()+">"+to.String())
			})

			s.Play()
			s.Play()
			s.Pause()
			s.Stop()

			Expect(seen).To(Equal([]string{"stopped>playing", "playing>paused", "paused>stopped"}))
		})
	})

	Context("when stopped or paused", func() {
		It("does not advance the engine", func() {
			Expect(s.Tick()).To(BeEmpty())
			Expect(g.Count(grid.Particulate)).To(BeZero())

			s.Pause()
			Expect(s.Tick()).To(BeEmpty())
			Expect(s.Engine().Steps()).To(BeZero())
		})

		It("freezes the particle in flight while paused", func() {
			s.Play()
			for i := 0; i < 5; i++ {
				s.Tick()
			}
			frozen := s.Particle()
			s.Pause()
			for i := 0; i < 5; i++ {
				s.Tick()
			}
			Expect(s.Particle()).To(Equal(frozen))
			Expect(g.At(frozen.Pos)).To(Equal(grid.Particulate))

			s.Play()
			s.Tick()
			Expect(s.Particle().Pos.Y).To(Equal(frozen.Pos.Y + 1))
		})
	})

	Context("when playing", func() {
		BeforeEach(func() {
			s.Play()
		})

		It("spawns at the emitter on the first tick", func() {
			touched := s.Tick()
			Expect(touched).To(ConsistOf(geom.Pt(19, 0)))
			Expect(s.Particle()).To(Equal(sim.At(19, 0)))
		})

		It("lands on the floor after 39 ticks and respawns on the next", func() {
			for i := 0; i < 39; i++ {
				s.Tick()
			}
			Expect(s.Particle().InFlight).To(BeFalse())
			Expect(g.Get(19, 38)).To(Equal(grid.Particulate))

			s.Tick()
			Expect(s.Particle()).To(Equal(sim.At(19, 0)))
		})

		It("uses the emitter column at spawn time", func() {
			s.SetEmitter(3)
			s.Tick()
			Expect(s.Particle().Pos).To(Equal(geom.Pt(3, 0)))
		})
	})

	Describe("stop", func() {
		It("clears all particulate and the particle in flight", func() {
			g.SetBlock(0, 38, 39, grid.Solid)
			s.Play()
			for i := 0; i < 200; i++ {
				s.Tick()
			}
			Expect(g.Count(grid.Particulate)).To(BeNumerically(">", 1))

			touched := s.Stop()
			Expect(touched).NotTo(BeEmpty())
			Expect(s.State()).To(Equal(session.Stopped))
			Expect(s.Particle().InFlight).To(BeFalse())
			Expect(g.Count(grid.Particulate)).To(BeZero())
			Expect(g.Count(grid.Solid)).To(Equal(39))
		})

		It("clears even when already stopped", func() {
			g.SetBlock(4, 4, 2, grid.Particulate)
			Expect(s.Stop()).To(HaveLen(4))
			Expect(g.Count(grid.Particulate)).To(BeZero())
		})
	})

	Describe("emitter", func() {
		It("never leaves the grid", func() {
			for i := 0; i < 100; i++ {
				s.MoveEmitter(-1)
			}
			Expect(s.Emitter()).To(Equal(0))

			for i := 0; i < 100; i++ {
				s.MoveEmitter(1)
			}
			Expect(s.Emitter()).To(Equal(38))

			s.SetEmitter(-7)
			Expect(s.Emitter()).To(Equal(0))
		})
	})

	It("centres the emitter for small grids", func() {
		Expect(session.Centre(1)).To(Equal(0))
		Expect(session.Centre(4)).To(Equal(1))
		Expect(session.Centre(0)).To(Equal(0))
	})
})
