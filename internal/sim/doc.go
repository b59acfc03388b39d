// Package sim implements the single-particle gravity rule.
//
// Each [Engine.Step] either spawns a particle at the emitter column or moves
// the particle in flight one row down, preferring straight down, then
// down-left, then down-right. A particle with no empty cell beneath it, or
// one that reaches the last row, lands and stays where it is.
//
// # Example
//
//	g := grid.New(39)
//	eng := sim.New()
//	var p sim.Particle
//	for i := 0; i < 39; i++ {
//		p, _ = eng.Step(g, 19, p)
//	}
//	// g.Get(19, 38) == grid.Particulate, p.InFlight == false
//
// Engines are not safe for concurrent use.
package sim
