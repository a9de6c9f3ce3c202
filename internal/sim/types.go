package sim

import "github.com/san-kum/orbitsim/internal/dynamo"

// Advancer moves a universe forward by one fixed step.
type Advancer interface {
	Advance(u *dynamo.Universe, dt float64)
}

// Metric accumulates a scalar over a run. It observes the initial state and
// the state after every step.
type Metric interface {
	Name() string
	Observe(u *dynamo.Universe, t float64)
	Value() float64
	Reset()
}

// Observer receives the universe after every step. step counts from 0 and t
// is the time at the start of that step. A non-nil error aborts the run.
type Observer interface {
	OnStep(step int, u *dynamo.Universe, t float64) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, u *dynamo.Universe, t float64) error

func (f ObserverFunc) OnStep(step int, u *dynamo.Universe, t float64) error {
	return f(step, u, t)
}

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	Steps     int
	FinalTime float64
	Metrics   map[string]float64
}
