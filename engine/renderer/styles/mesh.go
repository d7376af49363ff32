package styles

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	defaultMeshColor = mgl32.Vec4{0.8, 0.8, 0.85, 1}
	defaultLightDir  = mgl32.Vec3{-0.4, -1, -0.3}
)

// Mesh draws a lit triangle mesh, indexed or as a plain triangle list.
type Mesh struct {
	// Positions is the borrowed xyz position buffer.
	Positions []float32

	// Normals is the borrowed xyz normal buffer, one normal per position.
	Normals []float32

	// Indices is the optional triangle index list. When empty, Positions is drawn as a
	// triangle list.
	Indices []uint16

	// Opts positions the mesh and selects the camera variant.
	Opts RenderOpts

	// Color is the RGBA base colour.
	Color mgl32.Vec4

	// LightDir is the world-space direction the directional light travels in.
	LightDir mgl32.Vec3

	shader shader.Shader
}

var _ renderer.Renderable = &Mesh{}

// NewMesh creates a Mesh drawable with the default colour and light direction.
//
// Parameters:
//   - s: the mesh shader, usually Renderer.Shader(shader.KindMesh)
//   - positions: the xyz position buffer
//   - normals: the xyz normal buffer
//   - indices: the triangle index list, or nil for a plain triangle list
//   - opts: the render options
//
// Returns:
//   - *Mesh: the drawable
func NewMesh(s shader.Shader, positions, normals []float32, indices []uint16, opts RenderOpts) *Mesh {
	return &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		Opts:      opts,
		Color:     defaultMeshColor,
		LightDir:  defaultLightDir,
		shader:    s,
	}
}

func (m *Mesh) ShaderKind() shader.Kind {
	return shader.KindMesh
}

func (m *Mesh) Shader() shader.Shader {
	return m.shader
}

// validate checks that normals pair with positions and every index addresses a vertex.
func (m *Mesh) validate() (int, error) {
	count, err := vertexCount("mesh", m.Positions)
	if err != nil {
		return 0, err
	}
	if len(m.Normals) != len(m.Positions) {
		return 0, fmt.Errorf("%w: mesh: %d normal floats for %d position floats", ErrBadVertexData, len(m.Normals), len(m.Positions))
	}
	for i, idx := range m.Indices {
		if int(idx) >= count {
			return 0, fmt.Errorf("%w: mesh: index %d at %d out of range for %d vertices", ErrBadVertexData, idx, i, count)
		}
	}
	return count, nil
}

func (m *Mesh) BufferAttributes(ctx device.Context) error {
	if _, err := m.validate(); err != nil {
		return err
	}
	if err := bufferVec3(ctx, m.shader, attribPosition, m.Positions); err != nil {
		return err
	}
	if err := bufferVec3(ctx, m.shader, attribNormal, m.Normals); err != nil {
		return err
	}
	if len(m.Indices) > 0 {
		ctx.BufferIndices(m.Indices)
	}
	return nil
}

func (m *Mesh) Render(ctx device.Context, state renderer.State) error {
	count, err := m.validate()
	if err != nil {
		return err
	}
	if err := writeTransforms(ctx, m.shader, state, m.Opts); err != nil {
		return err
	}

	color, err := m.shader.UniformLocation("meshColor")
	if err != nil {
		return err
	}
	light, err := m.shader.UniformLocation("lightDir")
	if err != nil {
		return err
	}
	ctx.Uniform4(color, m.Color)
	ctx.Uniform3(light, m.LightDir)

	if len(m.Indices) > 0 {
		ctx.DrawElements(device.PrimitiveTriangles, len(m.Indices))
		return nil
	}
	ctx.DrawArrays(device.PrimitiveTriangles, 0, count)
	return nil
}
