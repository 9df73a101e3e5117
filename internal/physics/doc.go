// Package physics implements the gravitational n-body simulation engine.
//
// The central type is [Field], which owns a set of point-mass bodies and
// advances them in discrete steps:
//
//	field := physics.NewField(1.0, 1.0, 0)
//	field.AddBody(0, 1000, geometry.Origin(), geometry.Zero())
//	field.AddBody(1, 1, geometry.Point{X: 100}, geometry.Vector{DY: 3.16})
//	field.Step()
//
// Each step builds an ephemeral Barnes-Hut quadtree ([Tree]) over the
// current positions, walks it once per body to approximate the net
// gravitational force in O(N log N), then integrates with semi-implicit
// Euler. Forces are always computed against a single fixed configuration;
// no body moves until every force is known.
//
// For identical insertion order and parameters, stepping is bitwise
// reproducible: bodies are iterated in insertion order and tree children
// are visited in the fixed order NW, NE, SW, SE.
package physics
