package dynamo

import (
	"fmt"
	"math"
)

// Body is a named point mass. Mass is in kg, Position in m, Velocity in m/s.
type Body struct {
	Name     string
	Mass     float64
	Position Vector3
	Velocity Vector3
}

// Validate checks that the mass is strictly positive and finite. The engine
// itself never calls it; loaders do.
func (b Body) Validate() error {
	if math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) || b.Mass <= 0 {
		return fmt.Errorf("%w: %q has mass %g", ErrInvalidBody, b.Name, b.Mass)
	}
	return nil
}

// Momentum returns m·v.
func (b Body) Momentum() Vector3 {
	return b.Velocity.Scale(b.Mass)
}

func (b Body) String() string {
	return fmt.Sprintf("%s m=%.3e r=(%.3e, %.3e, %.3e) v=(%.3e, %.3e, %.3e)",
		b.Name, b.Mass,
		b.Position.X, b.Position.Y, b.Position.Z,
		b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
}
