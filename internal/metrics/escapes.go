package metrics

import "github.com/san-kum/orbitsim/internal/dynamo"

// Escapes counts bodies farther than radius from the first body at the most
// recent observation.
type Escapes struct {
	name    string
	radius  float64
	escaped int
}

func NewEscapes(radius float64) *Escapes {
	return &Escapes{
		name:   "escapes",
		radius: radius,
	}
}

func (e *Escapes) Name() string {
	return e.name
}

func (e *Escapes) Observe(u *dynamo.Universe, t float64) {
	e.escaped = 0
	if u.Len() == 0 {
		return
	}
	center := u.At(0).Position
	for _, b := range u.All()[1:] {
		if b.Position.Sub(center).Norm() > e.radius {
			e.escaped++
		}
	}
}

func (e *Escapes) Value() float64 {
	return float64(e.escaped)
}

func (e *Escapes) Reset() {
	e.escaped = 0
}
