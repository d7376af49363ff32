package simulation

import (
	log "github.com/sirupsen/logrus"
)

// SimulationBuilderOption is a functional option applied to a simulation by NewSimulation.
type SimulationBuilderOption func(*simulation)

// WithBodyCount sets the number of generated bodies. Ignored when WithBodies is used.
//
// Parameters:
//   - n: the number of bodies
//
// Returns:
//   - SimulationBuilderOption: functional option to set the body count
func WithBodyCount(n int) SimulationBuilderOption {
	return func(s *simulation) {
		if n >= 0 {
			s.count = n
		}
	}
}

// WithBodies replaces the generated initial conditions with explicit bodies.
// The slice is copied.
//
// Parameters:
//   - bodies: the initial bodies
//
// Returns:
//   - SimulationBuilderOption: functional option to set the bodies
func WithBodies(bodies []Body) SimulationBuilderOption {
	return func(s *simulation) {
		s.initial = make([]Body, len(bodies))
		copy(s.initial, bodies)
	}
}

// WithGravity sets the gravitational constant.
//
// Parameters:
//   - g: the gravitational constant
//
// Returns:
//   - SimulationBuilderOption: functional option to set gravity
func WithGravity(g float32) SimulationBuilderOption {
	return func(s *simulation) {
		s.gravity = g
	}
}

// WithSoftening sets the softening length that bounds the force between close bodies.
//
// Parameters:
//   - eps: the softening length
//
// Returns:
//   - SimulationBuilderOption: functional option to set the softening length
func WithSoftening(eps float32) SimulationBuilderOption {
	return func(s *simulation) {
		if eps > 0 {
			s.softening = eps
		}
	}
}

// WithSpread sets the radius of the disc generated bodies are scattered in.
//
// Parameters:
//   - radius: the disc radius
//
// Returns:
//   - SimulationBuilderOption: functional option to set the spread
func WithSpread(radius float32) SimulationBuilderOption {
	return func(s *simulation) {
		if radius > 0 {
			s.spread = radius
		}
	}
}

// WithHeight sets the y of the disc generated bodies are scattered in.
//
// Parameters:
//   - y: the disc height
//
// Returns:
//   - SimulationBuilderOption: functional option to set the height
func WithHeight(y float32) SimulationBuilderOption {
	return func(s *simulation) {
		s.height = y
	}
}

// WithSeed sets the seed of the initial condition generator.
//
// Parameters:
//   - seed: the generator seed
//
// Returns:
//   - SimulationBuilderOption: functional option to set the seed
func WithSeed(seed uint64) SimulationBuilderOption {
	return func(s *simulation) {
		s.seed = seed
	}
}

// WithWorkers sets the number of pool workers the force pass is split across.
// Defaults to runtime.NumCPU().
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - SimulationBuilderOption: functional option to set the worker count
func WithWorkers(n int) SimulationBuilderOption {
	return func(s *simulation) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for simulation diagnostics.
//
// Parameters:
//   - logger: the logger entry to use
//
// Returns:
//   - SimulationBuilderOption: functional option to set the logger
func WithLogger(logger *log.Entry) SimulationBuilderOption {
	return func(s *simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}
