// Package scenario builds the initial universe: a central star, a fixed
// catalog of planets and moons, and random small bodies to fill any
// requested remainder.
//
// Randomness comes only from the *rand.Rand handed to [New]; equal seeds
// give identical universes.
package scenario

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	AU        = 1.496e11
	SolarMass = 1.989e30

	MinAsteroidDistance = 0.3 * AU
	MaxAsteroidDistance = 1.0 * AU
	MinAsteroidMass     = 1e10
	MaxAsteroidMass     = 1e18
)

type Generator struct {
	rng     *rand.Rand
	catalog Catalog
}

func New(rng *rand.Rand) *Generator {
	return NewWithCatalog(rng, DefaultCatalog())
}

func NewWithCatalog(rng *rand.Rand, cat Catalog) *Generator {
	return &Generator{rng: rng, catalog: cat}
}

// NewSeeded is New with a generator seeded from seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

func (g *Generator) Catalog() Catalog { return g.catalog }

// Generate returns the catalog followed by requested-Size() asteroids. The
// catalog is never trimmed, so the result has max(requested, Size()) bodies.
func (g *Generator) Generate(requested int) *dynamo.Universe {
	u := dynamo.NewUniverse()
	u.Add(dynamo.Body{Name: g.catalog.Star.Name, Mass: g.catalog.Star.Mass})
	for _, e := range g.catalog.Bodies {
		u.Add(e.body())
	}

	extra := requested - u.Len()
	for i := 1; i <= extra; i++ {
		u.Add(g.asteroid(i))
	}
	return u
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// asteroid draws a small body on a near-circular orbit around the Sun. The
// orbital speed always uses SolarMass, whatever the catalog's star weighs.
func (g *Generator) asteroid(index int) dynamo.Body {
	distance := g.uniform(MinAsteroidDistance, MaxAsteroidDistance)
	v := math.Sqrt(physics.G * SolarMass / distance)

	theta := g.uniform(0, 2*math.Pi)
	phi := g.uniform(0, math.Pi)
	vz := g.uniform(-0.001*v, 0.001*v)
	mass := g.uniform(MinAsteroidMass, MaxAsteroidMass)

	sinT, cosT := math.Sincos(theta)
	return dynamo.Body{
		Name: "Asteroid_" + strconv.Itoa(index),
		Mass: mass,
		Position: dynamo.Vector3{
			X: distance * cosT,
			Y: distance * sinT,
			Z: distance * math.Sin(phi) * 0.1,
		},
		Velocity: dynamo.Vector3{
			X: -v * sinT,
			Y: v * cosT,
			Z: vz,
		},
	}
}
