package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	// G is the gravitational constant in m³·kg⁻¹·s⁻².
	G = 6.67430e-11
	// Softening is added to every pair distance, in meters.
	Softening = 1e-9
)

type Mode int

const (
	ModeDirected Mode = iota
	ModeSymmetric
)

func (m Mode) String() string {
	switch m {
	case ModeDirected:
		return "directed"
	case ModeSymmetric:
		return "symmetric"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "directed":
		return ModeDirected, nil
	case "symmetric":
		return ModeSymmetric, nil
	}
	return ModeDirected, dynamo.InvalidConfig("mode", name, "expected directed or symmetric")
}

// Engine advances a universe under mutual gravitation. An Engine reuses its
// acceleration buffer between calls and must not be shared across goroutines.
type Engine struct {
	G         float64
	Softening float64
	Mode      Mode

	acc []dynamo.Vector3
}

func NewEngine() *Engine {
	return &Engine{G: G, Softening: Softening, Mode: ModeDirected}
}

func NewEngineWithMode(mode Mode) *Engine {
	e := NewEngine()
	e.Mode = mode
	return e
}

func (e *Engine) ensureScratch(n int) []dynamo.Vector3 {
	if cap(e.acc) < n {
		e.acc = make([]dynamo.Vector3, n)
	}
	e.acc = e.acc[:n]
	for i := range e.acc {
		e.acc[i] = dynamo.Vector3{}
	}
	return e.acc
}

// Advance moves every body of u forward by dt seconds. It does not validate
// dt or the masses.
func (e *Engine) Advance(u *dynamo.Universe, dt float64) {
	e.Step(u.All(), dt)
}

// Step is Advance over a bare slice.
func (e *Engine) Step(bodies []dynamo.Body, dt float64) {
	acc := e.ensureScratch(len(bodies))
	e.accumulate(bodies, acc)

	for i := range bodies {
		bodies[i].Velocity.AddInPlace(acc[i].Scale(dt))
		bodies[i].Position.AddInPlace(bodies[i].Velocity.Scale(dt))
	}
}

// Accelerations returns the acceleration on every body, index-aligned with
// bodies. The result is freshly allocated.
func (e *Engine) Accelerations(bodies []dynamo.Body) []dynamo.Vector3 {
	acc := make([]dynamo.Vector3, len(bodies))
	e.accumulate(bodies, acc)
	return acc
}

func (e *Engine) accumulate(bodies []dynamo.Body, acc []dynamo.Vector3) {
	if e.Mode == ModeSymmetric {
		e.accumulateSymmetric(bodies, acc)
		return
	}

	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			acc[i].AddInPlace(e.pair(bodies[i], bodies[j]))
		}
	}
}

func (e *Engine) accumulateSymmetric(bodies []dynamo.Body, acc []dynamo.Vector3) {
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := bodies[j].Position.Sub(bodies[i].Position)
			dist := r.Norm() + e.Softening
			inv3 := 1.0 / (dist * dist * dist)

			acc[i].AddInPlace(r.Scale(e.G * bodies[j].Mass * inv3))
			acc[j].AddInPlace(r.Scale(-e.G * bodies[i].Mass * inv3))
		}
	}
}

// pair is the acceleration source exerts on target.
func (e *Engine) pair(target, source dynamo.Body) dynamo.Vector3 {
	r := source.Position.Sub(target.Position)
	dist := r.Norm() + e.Softening
	return r.Scale(e.G * source.Mass / (dist * dist * dist))
}

// PairAcceleration is the acceleration source exerts on target with the
// default constants.
func PairAcceleration(target, source dynamo.Body) dynamo.Vector3 {
	return NewEngine().pair(target, source)
}
