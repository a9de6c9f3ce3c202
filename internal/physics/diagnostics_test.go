package physics

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

func TestEnergyTwoBody(t *testing.T) {
	bodies := []dynamo.Body{
		{Name: "a", Mass: 2, Velocity: dynamo.Vector3{X: 3}},
		{Name: "b", Mass: 4, Position: dynamo.Vector3{X: 10}},
	}

	if ke := KineticEnergy(bodies); ke != 9 {
		t.Errorf("kinetic energy = %v, want 9", ke)
	}

	want := -G * 2 * 4 / (10 + Softening)
	if pe := PotentialEnergy(bodies); relErr(pe, want) > 1e-12 {
		t.Errorf("potential energy = %v, want %v", pe, want)
	}
}

func TestMomentumAndCenterOfMass(t *testing.T) {
	bodies := []dynamo.Body{
		{Name: "a", Mass: 1, Position: dynamo.Vector3{X: -1}, Velocity: dynamo.Vector3{Y: 2}},
		{Name: "b", Mass: 3, Position: dynamo.Vector3{X: 1}, Velocity: dynamo.Vector3{Y: -1}},
	}

	if p := TotalMomentum(bodies); p != (dynamo.Vector3{Y: -1}) {
		t.Errorf("momentum = %v", p)
	}
	if s := MomentumScale(bodies); s != 5 {
		t.Errorf("momentum scale = %v, want 5", s)
	}
	if c := CenterOfMass(bodies); math.Abs(c.X-0.5) > 1e-15 {
		t.Errorf("center of mass = %v", c)
	}
	if l := AngularMomentum(bodies); l != (dynamo.Vector3{Z: -5}) {
		t.Errorf("angular momentum = %v", l)
	}
	if c := CenterOfMass(nil); c != (dynamo.Vector3{}) {
		t.Errorf("empty center of mass = %v", c)
	}
}

func TestYearEnergyBounded(t *testing.T) {
	u := sunEarth()
	e0 := TotalEnergy(u.All())
	engine := NewEngine()

	maxDrift := 0.0
	for i := 0; i < 8766; i++ {
		engine.Advance(u, 3600)
		maxDrift = math.Max(maxDrift, relErr(TotalEnergy(u.All()), e0))
	}

	if maxDrift > 0.01 {
		t.Errorf("energy drift %g over one year", maxDrift)
	}
}
