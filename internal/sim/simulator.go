package sim

import (
	"context"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Simulator drives an Advancer over a universe it borrows for the length of
// Run, handing the state to observers strictly after each step.
type Simulator struct {
	engine    Advancer
	metrics   []Metric
	observers []Observer
}

func New(engine Advancer) *Simulator {
	return &Simulator{
		engine:    engine,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// StepCount is the number of steps Run takes for cfg: the loop accumulates
// t += dt while t < duration, so it is computed the same way.
func StepCount(cfg Config) int {
	n := 0
	for t := 0.0; t < cfg.Duration; t += cfg.Dt {
		n++
	}
	return n
}

// Run advances u until the accumulated time reaches cfg.Duration. Observers
// see the time at the start of each step, so the first snapshot is labelled
// t=0 even though it was taken after one advance.
func (s *Simulator) Run(ctx context.Context, u *dynamo.Universe, cfg Config) (*Result, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(u, 0)
	}

	t := 0.0
	step := 0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, &dynamo.SimulationError{Step: step, Time: t, Wrapped: dynamo.ErrContextCanceled}
		default:
		}

		s.engine.Advance(u, cfg.Dt)

		for _, obs := range s.observers {
			if err := obs.OnStep(step, u, t); err != nil {
				s.collect(result)
				return result, &dynamo.SimulationError{Step: step, Time: t, Wrapped: err}
			}
		}

		t += cfg.Dt
		step++
		result.Steps = step
		result.FinalTime = t

		for _, m := range s.metrics {
			m.Observe(u, t)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func ValidateConfig(cfg Config) error {
	if math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) || cfg.Dt <= 0 {
		return dynamo.InvalidConfig("dt", cfg.Dt, "must be a positive finite number of seconds")
	}
	if math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) || cfg.Duration <= 0 {
		return dynamo.InvalidConfig("duration", cfg.Duration, "must be a positive finite number of seconds")
	}
	return nil
}
