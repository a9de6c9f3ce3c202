package scenario_test

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
)

var _ = Describe("Generator", func() {
	var gen *scenario.Generator

	BeforeEach(func() {
		gen = scenario.NewSeeded(42)
	})

	It("has a 29-body default catalog", func() {
		Expect(scenario.DefaultCatalog().Size()).To(Equal(29))
	})

	Context("when fewer bodies than the catalog are requested", func() {
		It("still returns the whole catalog for zero", func() {
			u := gen.Generate(0)
			Expect(u.Len()).To(Equal(29))
			Expect(u.At(0).Name).To(Equal("Sun"))
			Expect(u.At(3).Name).To(Equal("Earth"))
			Expect(u.At(28).Name).To(Equal("Triton"))
		})

		It("never trims the catalog", func() {
			Expect(gen.Generate(5).Len()).To(Equal(29))
			Expect(gen.Generate(-3).Len()).To(Equal(29))
		})
	})

	It("places the star at rest at the origin", func() {
		sun := gen.Generate(0).At(0)
		Expect(sun.Mass).To(Equal(scenario.SolarMass))
		Expect(sun.Position).To(Equal(dynamo.Vector3{}))
		Expect(sun.Velocity).To(Equal(dynamo.Vector3{}))
	})

	It("places catalog bodies on +x moving in +y", func() {
		u := gen.Generate(0)
		for i := 1; i < u.Len(); i++ {
			b := u.At(i)
			Expect(b.Position.X).To(BeNumerically(">", 0), b.Name)
			Expect(b.Position.Y).To(BeZero(), b.Name)
			Expect(b.Position.Z).To(BeZero(), b.Name)
			Expect(b.Velocity.X).To(BeZero(), b.Name)
			Expect(b.Velocity.Y).To(BeNumerically(">", 0), b.Name)
			Expect(b.Velocity.Z).To(BeZero(), b.Name)
		}

		earth := u.At(u.Index("Earth"))
		Expect(earth.Mass).To(Equal(5.972e24))
		Expect(earth.Position.X).To(Equal(1.496e11))
		Expect(earth.Velocity.Y).To(Equal(29780.0))
	})

	Context("when more bodies than the catalog are requested", func() {
		const requested = 60
		var u *dynamo.Universe

		BeforeEach(func() {
			u = gen.Generate(requested)
		})

		It("returns exactly the requested count", func() {
			Expect(u.Len()).To(Equal(requested))
		})

		It("names asteroids in order", func() {
			for i := 29; i < requested; i++ {
				Expect(u.At(i).Name).To(Equal("Asteroid_" + strconv.Itoa(i-28)))
			}
		})

		It("draws distances and masses within bounds", func() {
			for i := 29; i < requested; i++ {
				b := u.At(i)
				planar := math.Hypot(b.Position.X, b.Position.Y)
				Expect(planar).To(BeNumerically(">=", 0.3*scenario.AU), b.Name)
				Expect(planar).To(BeNumerically("<=", 1.0*scenario.AU), b.Name)
				// the lift above the plane is at most a tenth of the planar distance
				r := b.Position.Norm()
				Expect(r).To(BeNumerically(">=", 0.3*scenario.AU), b.Name)
				Expect(r).To(BeNumerically("<=", 1.0*scenario.AU*math.Sqrt(1.01)*(1+1e-12)), b.Name)
				Expect(b.Mass).To(BeNumerically(">=", 1e10), b.Name)
				Expect(b.Mass).To(BeNumerically("<=", 1e18), b.Name)
			}
		})

		It("starts asteroids on circular-speed tangential orbits", func() {
			for i := 29; i < requested; i++ {
				b := u.At(i)
				planar := math.Hypot(b.Position.X, b.Position.Y)
				v := math.Sqrt(physics.G * scenario.SolarMass / planar)

				Expect(math.Hypot(b.Velocity.X, b.Velocity.Y)).To(BeNumerically("~", v, v*1e-9), b.Name)
				Expect(math.Abs(b.Velocity.Z)).To(BeNumerically("<=", 0.001*v), b.Name)
				Expect(b.Position.Z).To(BeNumerically(">=", 0), b.Name)
				Expect(b.Position.Z).To(BeNumerically("<=", 0.1*planar), b.Name)

				radial := b.Position.X*b.Velocity.X + b.Position.Y*b.Velocity.Y
				Expect(math.Abs(radial)).To(BeNumerically("<", planar*v*1e-9), b.Name)
			}
		})
	})

	It("is reproducible for equal seeds", func() {
		a := scenario.NewSeeded(7).Generate(40).All()
		b := scenario.NewSeeded(7).Generate(40).All()
		Expect(cmp.Diff(a, b)).To(BeEmpty())

		c := scenario.NewSeeded(8).Generate(40).All()
		Expect(cmp.Diff(a, c)).NotTo(BeEmpty())
	})

	It("uses the solar mass for asteroid speeds whatever the star weighs", func() {
		cat := scenario.Catalog{Star: scenario.Star{Name: "Dwarf", Mass: 1e20}}
		u := scenario.NewWithCatalog(rand.New(rand.NewSource(1)), cat).Generate(3)

		Expect(u.Len()).To(Equal(3))
		Expect(u.At(1).Name).To(Equal("Asteroid_1"))

		b := u.At(1)
		planar := math.Hypot(b.Position.X, b.Position.Y)
		v := math.Sqrt(physics.G * scenario.SolarMass / planar)
		Expect(math.Hypot(b.Velocity.X, b.Velocity.Y)).To(BeNumerically("~", v, v*1e-9))
	})
})

var _ = Describe("Catalog files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("round-trips through YAML", func() {
		path := filepath.Join(dir, "catalog.yaml")
		Expect(scenario.SaveCatalog(path, scenario.DefaultCatalog())).To(Succeed())

		cat, err := scenario.LoadCatalog(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmp.Diff(scenario.DefaultCatalog(), cat)).To(BeEmpty())
	})

	It("defaults a missing star to the Sun", func() {
		cat, err := scenario.ParseCatalog([]byte(`
bodies:
  - name: Earth
    mass: 5.972e24
    distance: 1.496e11
    velocity: 29780
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(cat.Star.Name).To(Equal("Sun"))
		Expect(cat.Size()).To(Equal(2))
	})

	It("rejects non-positive masses", func() {
		_, err := scenario.ParseCatalog([]byte(`
star: {name: Sun, mass: 1.989e30}
bodies:
  - {name: Ghost, mass: 0, distance: 1e11, velocity: 30000}
`))
		Expect(err).To(MatchError(dynamo.ErrInvalidBody))
	})

	It("rejects malformed YAML", func() {
		_, err := scenario.ParseCatalog([]byte("bodies: [unterminated"))
		Expect(err).To(HaveOccurred())
	})

	It("reports missing files", func() {
		_, err := scenario.LoadCatalog(filepath.Join(dir, "nope.yaml"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
