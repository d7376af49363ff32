// Package scene assembles the water demo: a particle system orbiting above a reflective water
// surface, with a ground plane below it, a sphere at the centre of mass and the world axes.
package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/styles"
	"github.com/Carmen-Shannon/oxy-gl/engine/simulation"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

var (
	groundColor    = mgl32.Vec4{0.22, 0.2, 0.17, 1}
	sphereColor    = mgl32.Vec4{0.95, 0.55, 0.2, 1}
	reflectedAlpha = float32(0.45)
)

// Scene owns the world state a frame is drawn from and builds the frame's drawables.
// It is not safe for concurrent use; Tick and Drawables run on the render thread.
type Scene interface {
	renderer.State

	// Simulation returns the particle system.
	Simulation() simulation.Simulation

	// Tick advances the simulation by dt unless paused and refreshes the camera matrices.
	//
	// Parameters:
	//   - dt: the tick duration in seconds
	Tick(dt float32)

	// Drawables builds the frame in draw order: ground, reflected particles, sphere,
	// particles, axes, water. The drawables borrow the scene's buffers and are only valid
	// until the next Tick.
	//
	// Parameters:
	//   - r: the renderer whose shaders the drawables resolve against
	//
	// Returns:
	//   - []renderer.Renderable: the drawables of one frame
	Drawables(r renderer.Renderer) []renderer.Renderable

	// Quantities returns the conserved quantities of the simulation.
	//
	// Returns:
	//   - simulation.Snapshot: momentum, angular momentum and energy at the current step
	Quantities() simulation.Snapshot

	// Paused reports whether Tick skips the simulation.
	Paused() bool

	// SetPaused pauses or resumes the simulation.
	//
	// Parameters:
	//   - paused: true to pause
	SetPaused(paused bool)

	// Reset restores the initial particles.
	Reset()

	// Close releases the simulation's workers.
	Close()
}

// scene is the implementation of the Scene interface.
type scene struct {
	camera camera.Camera
	sim    simulation.Simulation

	ground geometry.Mesh
	sphere geometry.Mesh
	water  []float32
	axes   []float32

	waterHeight  float32
	groundHeight float32
	waterSize    float32
	sphereRadius float32
	sphereBands  int
	pointSize    float32

	showAxes    bool
	reflections bool
	paused      bool

	logger *log.Entry
}

var _ Scene = &scene{}

// NewScene creates a scene. Without WithCamera an orbit camera is created, and without
// WithSimulation a default simulation is created. The camera's reflection height is set to the
// water height.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the ready scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		waterHeight:  0,
		groundHeight: -3,
		waterSize:    20,
		sphereRadius: 0.6,
		sphereBands:  24,
		pointSize:    6,
		showAxes:     true,
		reflections:  true,
		logger:       log.WithField("component", "scene"),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.camera == nil {
		s.camera = camera.NewCamera(camera.WithController(camera.NewCameraController()))
	}
	if s.sim == nil {
		s.sim = simulation.NewSimulation()
	}
	s.camera.SetReflectionHeight(s.waterHeight)

	s.ground = geometry.Plane(s.waterSize, s.groundHeight)
	s.sphere = geometry.Sphere(s.sphereRadius, s.sphereBands, s.sphereBands)
	s.water = geometry.Quad(s.waterSize, s.waterHeight)
	s.axes = geometry.Axes(s.waterSize / 4)

	s.logger.WithFields(log.Fields{
		"bodies":       s.sim.Len(),
		"water_height": s.waterHeight,
		"reflections":  s.reflections,
	}).Debug("scene ready")
	return s
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Simulation() simulation.Simulation {
	return s.sim
}

func (s *scene) Tick(dt float32) {
	if !s.paused {
		s.sim.Step(dt)
	}
	s.camera.Update()
}

func (s *scene) Drawables(r renderer.Renderer) []renderer.Renderable {
	mesh := r.Shader(shader.KindMesh)
	flat := r.Shader(shader.KindFlat)
	point := r.Shader(shader.KindPoint)
	positions := s.sim.Positions()

	out := make([]renderer.Renderable, 0, 6)

	ground := styles.NewMesh(mesh, s.ground.Positions, s.ground.Normals, s.ground.Indices, styles.RenderOpts{})
	ground.Color = groundColor
	out = append(out, ground)

	if s.reflections && len(positions) > 0 {
		// mirrored about the water, keeping only what lies above it
		reflected := styles.NewPoints(point, positions, styles.RenderOpts{
			ClipPlane:   geometry.ClipPlane(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, s.waterHeight, 0}),
			FlipCameraY: true,
		})
		reflected.Size = s.pointSize
		reflected.Color[3] = reflectedAlpha
		out = append(out, reflected)
	}

	sphere := styles.NewMesh(mesh, s.sphere.Positions, s.sphere.Normals, s.sphere.Indices, styles.RenderOpts{
		Pos: s.centreOfMass(),
	})
	sphere.Color = sphereColor
	out = append(out, sphere)

	if len(positions) > 0 {
		points := styles.NewPoints(point, positions, styles.RenderOpts{})
		points.Size = s.pointSize
		out = append(out, points)
	}

	if s.showAxes {
		out = append(out, styles.NewLines(flat, s.axes, styles.RenderOpts{}))
	}

	out = append(out, styles.NewWater(flat, s.water, styles.RenderOpts{}))
	return out
}

// centreOfMass returns the mass-weighted mean body position, or the origin when there are no
// bodies.
func (s *scene) centreOfMass() mgl32.Vec3 {
	var sum mgl32.Vec3
	var mass float32
	for _, b := range s.sim.Bodies() {
		sum = sum.Add(b.Pos.Mul(b.Mass))
		mass += b.Mass
	}
	if mass == 0 {
		return mgl32.Vec3{}
	}
	return sum.Mul(1 / mass)
}

func (s *scene) Quantities() simulation.Snapshot {
	return s.sim.Snapshot()
}

func (s *scene) Paused() bool {
	return s.paused
}

func (s *scene) SetPaused(paused bool) {
	s.paused = paused
	s.logger.WithField("paused", paused).Info("simulation pause toggled")
}

func (s *scene) Reset() {
	s.sim.Reset()
}

func (s *scene) Close() {
	s.sim.Close()
}
