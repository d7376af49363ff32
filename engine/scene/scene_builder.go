package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/simulation"
	log "github.com/sirupsen/logrus"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the camera the scene is viewed through.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithSimulation sets the particle system. The scene takes ownership and closes it in Close.
//
// Parameters:
//   - sim: the simulation
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSimulation(sim simulation.Simulation) SceneBuilderOption {
	return func(s *scene) {
		s.sim = sim
	}
}

// WithWater sets the water surface height and the side length of the water and ground.
//
// Parameters:
//   - height: the y of the water surface and the reflection plane
//   - size: the side length of the square water surface
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWater(height, size float32) SceneBuilderOption {
	return func(s *scene) {
		s.waterHeight = height
		if size > 0 {
			s.waterSize = size
		}
	}
}

// WithGroundHeight sets the y of the ground plane below the water.
//
// Parameters:
//   - height: the ground height
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGroundHeight(height float32) SceneBuilderOption {
	return func(s *scene) {
		s.groundHeight = height
	}
}

// WithSphere sets the radius and tessellation of the centre-of-mass sphere.
//
// Parameters:
//   - radius: the sphere radius
//   - bands: latitude and longitude bands
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSphere(radius float32, bands int) SceneBuilderOption {
	return func(s *scene) {
		if radius > 0 {
			s.sphereRadius = radius
		}
		s.sphereBands = bands
	}
}

// WithPointSize sets the particle size in pixels.
//
// Parameters:
//   - size: the point diameter
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPointSize(size float32) SceneBuilderOption {
	return func(s *scene) {
		if size > 0 {
			s.pointSize = size
		}
	}
}

// WithShowAxes toggles the world axes.
//
// Parameters:
//   - show: true to draw the axes
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShowAxes(show bool) SceneBuilderOption {
	return func(s *scene) {
		s.showAxes = show
	}
}

// WithReflections toggles the reflected particle pass.
//
// Parameters:
//   - enabled: true to draw reflections
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithReflections(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.reflections = enabled
	}
}

// WithPaused starts the scene with the simulation paused.
//
// Parameters:
//   - paused: true to start paused
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPaused(paused bool) SceneBuilderOption {
	return func(s *scene) {
		s.paused = paused
	}
}

// WithLogger sets the logger used by the scene.
//
// Parameters:
//   - logger: the logger entry to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *log.Entry) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
