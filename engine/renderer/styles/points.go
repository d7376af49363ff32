package styles

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

const defaultPointSize = 6

var defaultPointColor = mgl32.Vec4{1, 0.85, 0.4, 1}

// Points draws a flat xyz buffer as round point sprites.
type Points struct {
	// Positions is the borrowed xyz buffer, one point per three floats.
	Positions []float32

	// Opts positions the points and selects the camera variant.
	Opts RenderOpts

	// Size is the point diameter in pixels.
	Size float32

	// Color is the RGBA point colour.
	Color mgl32.Vec4

	shader shader.Shader
}

var _ renderer.Renderable = &Points{}

// NewPoints creates a Points drawable with the default size and colour.
//
// Parameters:
//   - s: the point shader, usually Renderer.Shader(shader.KindPoint)
//   - positions: the xyz buffer to draw
//   - opts: the render options
//
// Returns:
//   - *Points: the drawable
func NewPoints(s shader.Shader, positions []float32, opts RenderOpts) *Points {
	return &Points{
		Positions: positions,
		Opts:      opts,
		Size:      defaultPointSize,
		Color:     defaultPointColor,
		shader:    s,
	}
}

func (p *Points) ShaderKind() shader.Kind {
	return shader.KindPoint
}

func (p *Points) Shader() shader.Shader {
	return p.shader
}

func (p *Points) BufferAttributes(ctx device.Context) error {
	if _, err := vertexCount("points", p.Positions); err != nil {
		return err
	}
	return bufferVec3(ctx, p.shader, attribPosition, p.Positions)
}

func (p *Points) Render(ctx device.Context, state renderer.State) error {
	count, err := vertexCount("points", p.Positions)
	if err != nil {
		return err
	}
	if err := writeTransforms(ctx, p.shader, state, p.Opts); err != nil {
		return err
	}

	size, err := p.shader.UniformLocation("pointSize")
	if err != nil {
		return err
	}
	color, err := p.shader.UniformLocation("color")
	if err != nil {
		return err
	}
	ctx.Uniform1f(size, p.Size)
	ctx.Uniform4(color, p.Color)

	ctx.DrawArrays(device.PrimitivePoints, 0, count)
	return nil
}
