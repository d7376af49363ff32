// Package camera provides the view and projection matrices the renderer reads each frame.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	// reflectionHeight is the y of the horizontal plane the flipped view mirrors across.
	reflectionHeight float32

	viewMatrix         mgl32.Mat4
	viewFlippedYMatrix mgl32.Mat4
	projectionMatrix   mgl32.Mat4

	controller CameraController
}

// Camera holds perspective settings and computes the view, flipped view and projection
// matrices from an attached CameraController. All matrices are column-major and use the
// OpenGL clip-space convention.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ReflectionHeight returns the y of the plane the flipped view mirrors across.
	ReflectionHeight() float32

	// ViewMatrix returns the current 4x4 view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ViewFlippedYMatrix returns the view matrix of the world mirrored across the horizontal
	// reflection plane. Drawables rendered with it appear as their reflection in that plane.
	//
	// Returns:
	//   - mgl32.Mat4: the mirrored view matrix
	ViewFlippedYMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current 4x4 perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update reads position/target from the controller and recomputes the matrices.
	// Should be called once per frame. Does nothing without a controller.
	Update()

	// SetFov sets the field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float32)

	// SetReflectionHeight sets the y of the reflection plane and recomputes matrices.
	SetReflectionHeight(height float32)

	// SetController attaches a CameraController to the camera.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// Position and target come from the controller attached via WithController or SetController.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:                 mgl32.Vec3{0, 1, 0},
		fov:                45.0 * (math.Pi / 180.0),
		aspect:             1.0,
		near:               0.1,
		far:                100.0,
		viewMatrix:         mgl32.Ident4(),
		viewFlippedYMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ReflectionHeight() float32 {
	return c.reflectionHeight
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ViewFlippedYMatrix() mgl32.Mat4 {
	return c.viewFlippedYMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update() {
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetReflectionHeight(height float32) {
	c.reflectionHeight = height
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates every matrix. The view matrices keep their previous value
// while no controller is attached.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)

	if c.controller == nil {
		return
	}
	c.viewMatrix = mgl32.LookAtV(c.controller.Position(), c.controller.Target(), c.up)

	// mirror = T(0,h,0) * S(1,-1,1) * T(0,-h,0)
	h := c.reflectionHeight
	mirror := mgl32.Translate3D(0, h, 0).
		Mul4(mgl32.Scale3D(1, -1, 1)).
		Mul4(mgl32.Translate3D(0, -h, 0))
	c.viewFlippedYMatrix = c.viewMatrix.Mul4(mirror)
}
