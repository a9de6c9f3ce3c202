package physics

import "github.com/san-kum/orbitsim/internal/dynamo"

// KineticEnergy returns Σ ½·m·|v|².
func KineticEnergy(bodies []dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
	}
	return ke
}

// PotentialEnergy uses the same softened distance as the engine.
func PotentialEnergy(bodies []dynamo.Body) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(bodies[i].Position).Norm() + Softening
			pe -= G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []dynamo.Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

func TotalMomentum(bodies []dynamo.Body) dynamo.Vector3 {
	var p dynamo.Vector3
	for _, b := range bodies {
		p.AddInPlace(b.Momentum())
	}
	return p
}

// MomentumScale is Σ|m·v|, the natural normalisation for momentum drift.
func MomentumScale(bodies []dynamo.Body) float64 {
	s := 0.0
	for _, b := range bodies {
		s += b.Momentum().Norm()
	}
	return s
}

func AngularMomentum(bodies []dynamo.Body) dynamo.Vector3 {
	var l dynamo.Vector3
	for _, b := range bodies {
		l.AddInPlace(b.Position.Cross(b.Momentum()))
	}
	return l
}

func CenterOfMass(bodies []dynamo.Body) dynamo.Vector3 {
	var c dynamo.Vector3
	m := 0.0
	for _, b := range bodies {
		c.AddInPlace(b.Position.Scale(b.Mass))
		m += b.Mass
	}
	if m == 0 {
		return dynamo.Vector3{}
	}
	return c.Scale(1 / m)
}
