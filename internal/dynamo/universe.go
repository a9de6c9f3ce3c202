package dynamo

// Universe is an ordered, index-stable collection of bodies. Bodies are
// appended during setup and never removed; the physics engine mutates
// positions and velocities in place through At or All.
type Universe struct {
	bodies []Body
}

func NewUniverse() *Universe {
	return &Universe{bodies: make([]Body, 0)}
}

// NewUniverseFrom copies bodies into a fresh universe.
func NewUniverseFrom(bodies []Body) *Universe {
	u := &Universe{bodies: make([]Body, len(bodies))}
	copy(u.bodies, bodies)
	return u
}

// Add appends a body. Its identity is its index.
func (u *Universe) Add(b Body) {
	u.bodies = append(u.bodies, b)
}

func (u *Universe) Len() int { return len(u.bodies) }

// At returns a reference to the body at index i for in-place mutation.
func (u *Universe) At(i int) *Body {
	return &u.bodies[i]
}

// All returns the backing slice. Writes through it are visible to the universe.
func (u *Universe) All() []Body {
	return u.bodies
}

func (u *Universe) Clone() *Universe {
	return NewUniverseFrom(u.bodies)
}

func (u *Universe) Names() []string {
	names := make([]string, len(u.bodies))
	for i, b := range u.bodies {
		names[i] = b.Name
	}
	return names
}

// Index returns the index of the first body with the given name, or -1.
func (u *Universe) Index(name string) int {
	for i, b := range u.bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// IsValid reports whether every position and velocity is finite.
func (u *Universe) IsValid() bool {
	for _, b := range u.bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return false
		}
	}
	return true
}
