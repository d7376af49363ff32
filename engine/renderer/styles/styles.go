// Package styles holds the drawable styles the renderer dispatches: points, meshes, lines and
// the water surface. A drawable borrows its vertex data and its shader for one frame and owns
// nothing on the device.
package styles

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrBadVertexData is returned when a drawable's vertex data cannot be drawn as given.
var ErrBadVertexData = errors.New("styles: bad vertex data")

// RenderOpts positions a drawable and selects the reflection variant of the camera.
type RenderOpts struct {
	// Pos is the model translation.
	Pos mgl32.Vec3

	// ClipPlane is the plane (a, b, c, d) written to the clipPlane uniform. Geometry whose
	// world position p gives a*p.x + b*p.y + c*p.z + d < 0 is clipped. The zero value clips nothing.
	ClipPlane mgl32.Vec4

	// FlipCameraY renders with the camera's mirrored view, for reflection passes.
	FlipCameraY bool
}

// Uniform and attribute names shared by every built-in source.
const (
	uniformModel       = "model"
	uniformView        = "view"
	uniformPerspective = "perspective"
	uniformClipPlane   = "clipPlane"

	attribPosition = "position"
	attribNormal   = "normal"
)

// writeTransforms resolves and writes the uniforms every style shares: the model translation,
// the (optionally mirrored) view, the projection and the clip plane.
func writeTransforms(ctx device.Context, s shader.Shader, state renderer.State, opts RenderOpts) error {
	model, err := s.UniformLocation(uniformModel)
	if err != nil {
		return err
	}
	view, err := s.UniformLocation(uniformView)
	if err != nil {
		return err
	}
	perspective, err := s.UniformLocation(uniformPerspective)
	if err != nil {
		return err
	}
	clipPlane, err := s.UniformLocation(uniformClipPlane)
	if err != nil {
		return err
	}

	cam := state.Camera()
	viewMatrix := cam.ViewMatrix()
	if opts.FlipCameraY {
		viewMatrix = cam.ViewFlippedYMatrix()
	}

	ctx.UniformMatrix4(model, mgl32.Translate3D(opts.Pos.X(), opts.Pos.Y(), opts.Pos.Z()))
	ctx.UniformMatrix4(view, viewMatrix)
	ctx.UniformMatrix4(perspective, cam.ProjectionMatrix())
	ctx.Uniform4(clipPlane, opts.ClipPlane)
	return nil
}

// bufferVec3 uploads tightly packed xyz data to the named attribute of the bound program.
func bufferVec3(ctx device.Context, s shader.Shader, name string, data []float32) error {
	loc, err := s.AttribLocation(name)
	if err != nil {
		return err
	}
	ctx.BufferFloat32(loc, data, 3)
	return nil
}

// vertexCount returns the number of xyz vertices in data.
func vertexCount(style string, data []float32) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: %s: no vertices", ErrBadVertexData, style)
	}
	if len(data)%3 != 0 {
		return 0, fmt.Errorf("%w: %s: %d floats is not a whole number of xyz vertices", ErrBadVertexData, style, len(data))
	}
	return len(data) / 3, nil
}
