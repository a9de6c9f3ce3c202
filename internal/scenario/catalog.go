package scenario

import (
	"fmt"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

// Entry is a catalog body placed on the +x axis moving in +y.
type Entry struct {
	Name     string  `yaml:"name"`
	Mass     float64 `yaml:"mass"`
	Distance float64 `yaml:"distance"`
	Velocity float64 `yaml:"velocity"`
}

// Star is the central body, at rest at the origin.
type Star struct {
	Name string  `yaml:"name"`
	Mass float64 `yaml:"mass"`
}

type Catalog struct {
	Star   Star    `yaml:"star"`
	Bodies []Entry `yaml:"bodies"`
}

// Size is the number of bodies the catalog always contributes.
func (c Catalog) Size() int { return 1 + len(c.Bodies) }

func (c Catalog) Validate() error {
	if err := (dynamo.Body{Name: c.Star.Name, Mass: c.Star.Mass}).Validate(); err != nil {
		return fmt.Errorf("star: %w", err)
	}
	for i, e := range c.Bodies {
		if err := e.body().Validate(); err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
	}
	return nil
}

func (e Entry) body() dynamo.Body {
	return dynamo.Body{
		Name:     e.Name,
		Mass:     e.Mass,
		Position: dynamo.Vector3{X: e.Distance},
		Velocity: dynamo.Vector3{Y: e.Velocity},
	}
}

var planets = []Entry{
	{"Mercury", 3.301e23, 5.79e10, 47870},
	{"Venus", 4.867e24, 1.082e11, 35020},
	{"Earth", 5.972e24, 1.496e11, 29780},
	{"Mars", 6.417e23, 2.279e11, 24130},
	{"Jupiter", 1.898e27, 7.785e11, 13070},
	{"Saturn", 5.683e26, 1.433e12, 9680},
	{"Uranus", 8.681e25, 2.877e12, 6800},
	{"Neptune", 1.024e26, 4.503e12, 5430},
}

// Moon distances are planet-centric orbital radii used as absolute x
// coordinates, the way the reference scenario places them.
var moons = []Entry{
	{"Moon", 7.342e22, 3.84e8, 1022},
	{"Phobos", 1.07e16, 9.378e6, 2138},
	{"Deimos", 1.48e15, 2.3459e7, 1351},
	{"Io", 8.93e22, 4.217e8, 17320},
	{"Europa", 4.8e22, 6.711e8, 13740},
	{"Ganymede", 1.48e23, 1.07e9, 10880},
	{"Callisto", 1.08e23, 1.882e9, 8200},
	{"Titan", 1.345e23, 1.222e9, 5570},
	{"Rhea", 2.31e21, 5.27e8, 8480},
	{"Iapetus", 1.81e21, 3.56e9, 3260},
	{"Dione", 1.1e21, 3.77e8, 10160},
	{"Tethys", 6.17e20, 2.95e8, 11350},
	{"Enceladus", 1.08e20, 2.38e8, 12370},
	{"Mimas", 3.75e19, 1.86e8, 14200},
	{"Miranda", 6.59e19, 1.29e8, 6640},
	{"Ariel", 1.35e21, 1.91e8, 5560},
	{"Umbriel", 1.17e21, 2.66e8, 4660},
	{"Titania", 3.42e21, 4.36e8, 3640},
	{"Oberon", 3.0e21, 5.83e8, 3150},
	{"Triton", 2.14e22, 3.55e8, 4390},
}

// DefaultCatalog returns a fresh copy of the solar system: the Sun, eight
// planets and twenty named moons.
func DefaultCatalog() Catalog {
	bodies := make([]Entry, 0, len(planets)+len(moons))
	bodies = append(bodies, planets...)
	bodies = append(bodies, moons...)
	return Catalog{
		Star:   Star{Name: "Sun", Mass: SolarMass},
		Bodies: bodies,
	}
}

// LoadCatalog reads a YAML catalog. A missing star defaults to the Sun.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if cat.Star.Name == "" && cat.Star.Mass == 0 {
		cat.Star = Star{Name: "Sun", Mass: SolarMass}
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func SaveCatalog(path string, cat Catalog) error {
	data, err := yaml.Marshal(cat)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
