// Package simulation runs the N-body particle system the scene draws as points.
package simulation

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// Body is one particle.
type Body struct {
	Pos  mgl32.Vec3
	Vel  mgl32.Vec3
	Mass float32
}

// Snapshot is the read-only summary of the simulation at one instant.
type Snapshot struct {
	// Steps is the number of steps taken since the last reset.
	Steps uint64

	// Time is the simulated time since the last reset.
	Time float32

	Momentum        mgl32.Vec3
	AngularMomentum mgl32.Vec3
	Energy          float32
}

// simulation is the implementation of the Simulation interface.
type simulation struct {
	bodies  []Body
	initial []Body
	acc     []mgl32.Vec3

	// positions is the flat xyz view of the bodies handed to the renderer.
	positions []float32

	gravity   float32
	softening float32

	count  int
	spread float32
	height float32
	seed   uint64

	steps uint64
	time  float32

	workers   int
	chunkSize int
	pool      worker.DynamicWorkerPool

	logger *log.Entry
}

// Simulation integrates softened Newtonian gravity between every pair of bodies with
// symplectic Euler steps. Pairwise forces are central and opposite, so total momentum and
// angular momentum are conserved up to rounding while energy oscillates around its start value.
//
// The force pass of each Step is split across a worker pool; every other method runs on the
// caller's goroutine. A Simulation is not safe for concurrent use.
type Simulation interface {
	// Len returns the number of bodies.
	Len() int

	// Bodies returns a copy of the bodies.
	Bodies() []Body

	// Positions returns the body positions as a flat xyz buffer. The buffer is owned by the
	// simulation and overwritten by the next Step or Reset.
	//
	// Returns:
	//   - []float32: 3*Len() floats
	Positions() []float32

	// Step advances the simulation by dt seconds.
	//
	// Parameters:
	//   - dt: the time step in seconds; non-positive values are ignored
	Step(dt float32)

	// TotalMomentum returns the sum of m*v over all bodies.
	TotalMomentum() mgl32.Vec3

	// TotalAngularMomentum returns the sum of r x m*v over all bodies about the origin.
	TotalAngularMomentum() mgl32.Vec3

	// TotalEnergy returns the kinetic plus softened potential energy.
	TotalEnergy() float32

	// Snapshot returns the conserved quantities together with the step count and time.
	Snapshot() Snapshot

	// Reset restores the initial bodies.
	Reset()

	// Close stops the worker pool. The simulation must not be stepped afterwards.
	Close()
}

var _ Simulation = &simulation{}

// NewSimulation creates a simulation. Unless WithBodies supplies explicit bodies, Len() bodies
// are scattered in a disc of radius spread at the configured height and set orbiting the
// centre, with the centre of mass at rest.
//
// Parameters:
//   - options: functional options to configure the simulation
//
// Returns:
//   - Simulation: the ready simulation
func NewSimulation(options ...SimulationBuilderOption) Simulation {
	s := &simulation{
		gravity:   1,
		softening: 0.15,
		count:     256,
		spread:    4,
		height:    2,
		seed:      1,
		workers:   runtime.NumCPU(),
		logger:    log.WithField("component", "simulation"),
	}
	for _, option := range options {
		option(s)
	}

	if s.initial == nil {
		s.initial = s.generate()
	}
	s.count = len(s.initial)
	s.bodies = make([]Body, s.count)
	s.acc = make([]mgl32.Vec3, s.count)
	s.positions = make([]float32, s.count*3)
	copy(s.bodies, s.initial)
	s.syncPositions()

	s.workers = max(1, min(s.workers, s.count))
	s.chunkSize = (s.count + s.workers - 1) / max(1, s.workers)
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)

	s.logger.WithFields(log.Fields{
		"bodies":  s.count,
		"workers": s.workers,
		"energy":  s.TotalEnergy(),
	}).Debug("simulation ready")
	return s
}

// generate scatters bodies in a disc and gives each a roughly circular orbit velocity.
func (s *simulation) generate() []Body {
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	bodies := make([]Body, s.count)
	totalMass := float32(s.count)

	for i := range bodies {
		r := s.spread * float32(math.Sqrt(rng.Float64()))
		theta := rng.Float64() * 2 * math.Pi
		sin, cos := math.Sincos(theta)
		pos := mgl32.Vec3{
			r * float32(cos),
			s.height + (rng.Float32()-0.5)*0.2*s.spread,
			r * float32(sin),
		}

		// speed of a circular orbit around the mass enclosed within r
		enclosed := totalMass * (r * r) / (s.spread * s.spread)
		speed := float32(math.Sqrt(float64(s.gravity * enclosed / (r + s.softening))))
		vel := mgl32.Vec3{-float32(sin) * speed, 0, float32(cos) * speed}

		bodies[i] = Body{Pos: pos, Vel: vel, Mass: 1}
	}

	// put the centre of mass at rest
	var momentum mgl32.Vec3
	for _, b := range bodies {
		momentum = momentum.Add(b.Vel.Mul(b.Mass))
	}
	drift := momentum.Mul(1 / totalMass)
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Sub(drift)
	}
	return bodies
}

func (s *simulation) Len() int {
	return s.count
}

func (s *simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *simulation) Positions() []float32 {
	return s.positions
}

func (s *simulation) Step(dt float32) {
	if dt <= 0 || s.count == 0 {
		return
	}

	s.accelerate()

	// kick then drift
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Vel = b.Vel.Add(s.acc[i].Mul(dt))
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	}

	s.steps++
	s.time += dt
	s.syncPositions()
}

// accelerate fills acc with the gravitational acceleration of every body. Bodies are split
// into chunks that the worker pool computes in parallel; each task writes only its own slots.
func (s *simulation) accelerate() {
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < s.count; start += s.chunkSize {
		end := min(start+s.chunkSize, s.count)

		wg.Add(1)
		id := taskID
		taskID++
		s.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := start; i < end; i++ {
					s.acc[i] = s.accelerationOf(i)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// accelerationOf sums the softened pull of every other body on body i.
func (s *simulation) accelerationOf(i int) mgl32.Vec3 {
	eps2 := s.softening * s.softening
	pi := s.bodies[i].Pos

	var a mgl32.Vec3
	for j := range s.bodies {
		if j == i {
			continue
		}
		d := s.bodies[j].Pos.Sub(pi)
		dist2 := d.Dot(d) + eps2
		inv := float32(1 / (math.Sqrt(float64(dist2)) * float64(dist2)))
		a = a.Add(d.Mul(s.gravity * s.bodies[j].Mass * inv))
	}
	return a
}

func (s *simulation) syncPositions() {
	for i, b := range s.bodies {
		copy(s.positions[i*3:i*3+3], b.Pos[:])
	}
}

func (s *simulation) TotalMomentum() mgl32.Vec3 {
	var p mgl32.Vec3
	for _, b := range s.bodies {
		p = p.Add(b.Vel.Mul(b.Mass))
	}
	return p
}

func (s *simulation) TotalAngularMomentum() mgl32.Vec3 {
	var l mgl32.Vec3
	for _, b := range s.bodies {
		l = l.Add(b.Pos.Cross(b.Vel.Mul(b.Mass)))
	}
	return l
}

func (s *simulation) TotalEnergy() float32 {
	eps2 := float64(s.softening * s.softening)
	var kinetic, potential float64
	for i, b := range s.bodies {
		kinetic += 0.5 * float64(b.Mass) * float64(b.Vel.Dot(b.Vel))
		for j := i + 1; j < len(s.bodies); j++ {
			d := s.bodies[j].Pos.Sub(b.Pos)
			dist := math.Sqrt(float64(d.Dot(d)) + eps2)
			potential -= float64(s.gravity) * float64(b.Mass) * float64(s.bodies[j].Mass) / dist
		}
	}
	return float32(kinetic + potential)
}

func (s *simulation) Snapshot() Snapshot {
	return Snapshot{
		Steps:           s.steps,
		Time:            s.time,
		Momentum:        s.TotalMomentum(),
		AngularMomentum: s.TotalAngularMomentum(),
		Energy:          s.TotalEnergy(),
	}
}

func (s *simulation) Reset() {
	copy(s.bodies, s.initial)
	s.steps = 0
	s.time = 0
	s.syncPositions()
	s.logger.Debug("simulation reset")
}

func (s *simulation) Close() {
	s.pool.Stop()
}
