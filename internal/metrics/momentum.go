package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// MomentumDrift is the largest |P − P0| seen, normalised by Σ|m·v| at the
// first observation.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vector3
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(u *dynamo.Universe, t float64) {
	p := physics.TotalMomentum(u.All())

	if m.samples == 0 {
		m.initial = p
		m.scale = physics.MomentumScale(u.All())
	}
	m.samples++

	if m.scale > 0 {
		m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Norm()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vector3{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
