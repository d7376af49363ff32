package styles

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

var defaultLineColor = mgl32.Vec4{1, 1, 1, 1}

// Lines draws a flat xyz buffer as a line list, two vertices per segment.
type Lines struct {
	// Positions is the borrowed xyz buffer.
	Positions []float32

	// Opts positions the lines and selects the camera variant.
	Opts RenderOpts

	// Color is the RGBA line colour.
	Color mgl32.Vec4

	shader shader.Shader
}

var _ renderer.Renderable = &Lines{}

// NewLines creates a Lines drawable with the default colour.
//
// Parameters:
//   - s: the flat shader, usually Renderer.Shader(shader.KindFlat)
//   - positions: the xyz line list
//   - opts: the render options
//
// Returns:
//   - *Lines: the drawable
func NewLines(s shader.Shader, positions []float32, opts RenderOpts) *Lines {
	return &Lines{
		Positions: positions,
		Opts:      opts,
		Color:     defaultLineColor,
		shader:    s,
	}
}

func (l *Lines) ShaderKind() shader.Kind {
	return shader.KindFlat
}

func (l *Lines) Shader() shader.Shader {
	return l.shader
}

func (l *Lines) BufferAttributes(ctx device.Context) error {
	if _, err := vertexCount("lines", l.Positions); err != nil {
		return err
	}
	return bufferVec3(ctx, l.shader, attribPosition, l.Positions)
}

func (l *Lines) Render(ctx device.Context, state renderer.State) error {
	count, err := vertexCount("lines", l.Positions)
	if err != nil {
		return err
	}
	return drawFlat(ctx, l.shader, state, l.Opts, l.Color, device.PrimitiveLines, count)
}

// drawFlat writes the flat program's uniforms and issues an array draw.
func drawFlat(ctx device.Context, s shader.Shader, state renderer.State, opts RenderOpts, c mgl32.Vec4, mode device.Primitive, count int) error {
	if err := writeTransforms(ctx, s, state, opts); err != nil {
		return err
	}
	color, err := s.UniformLocation("color")
	if err != nil {
		return err
	}
	ctx.Uniform4(color, c)
	ctx.DrawArrays(mode, 0, count)
	return nil
}
