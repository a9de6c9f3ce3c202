// Package dynamo provides the core data model for gravitational simulation.
//
// The package defines the value types shared by every other package:
//
//   - [Vector3]: three-component real vector with value arithmetic
//   - [Body]: named point mass with position and velocity
//   - [Universe]: ordered, index-stable collection of bodies
//
// # Ownership
//
// A Universe is owned by exactly one driver for the lifetime of a run.
// The driver hands it to the physics engine and then to trace observers
// strictly in sequence. Universe instances are NOT thread-safe.
//
// # Example
//
//	u := dynamo.NewUniverse()
//	u.Add(dynamo.Body{Name: "Sun", Mass: 1.989e30})
//	u.Add(dynamo.Body{
//	    Name:     "Earth",
//	    Mass:     5.972e24,
//	    Position: dynamo.Vector3{X: 1.496e11},
//	    Velocity: dynamo.Vector3{Y: 29780},
//	})
package dynamo
