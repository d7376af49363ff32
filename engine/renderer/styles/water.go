package styles

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

var defaultWaterColor = mgl32.Vec4{0.1, 0.35, 0.55, 0.55}

// Water draws the translucent water surface as a triangle list. It is drawn last so the
// reflection rendered below the surface shows through it.
type Water struct {
	// Positions is the borrowed xyz triangle list.
	Positions []float32

	// Opts positions the surface.
	Opts RenderOpts

	// Color is the RGBA surface colour; alpha controls how much reflection shows through.
	Color mgl32.Vec4

	shader shader.Shader
}

var _ renderer.Renderable = &Water{}

// NewWater creates a Water drawable with the default translucent colour.
//
// Parameters:
//   - s: the flat shader, usually Renderer.Shader(shader.KindFlat)
//   - positions: the xyz triangle list of the surface
//   - opts: the render options
//
// Returns:
//   - *Water: the drawable
func NewWater(s shader.Shader, positions []float32, opts RenderOpts) *Water {
	return &Water{
		Positions: positions,
		Opts:      opts,
		Color:     defaultWaterColor,
		shader:    s,
	}
}

func (w *Water) ShaderKind() shader.Kind {
	return shader.KindFlat
}

func (w *Water) Shader() shader.Shader {
	return w.shader
}

func (w *Water) BufferAttributes(ctx device.Context) error {
	if _, err := vertexCount("water", w.Positions); err != nil {
		return err
	}
	return bufferVec3(ctx, w.shader, attribPosition, w.Positions)
}

func (w *Water) Render(ctx device.Context, state renderer.State) error {
	count, err := vertexCount("water", w.Positions)
	if err != nil {
		return err
	}
	return drawFlat(ctx, w.shader, state, w.Opts, w.Color, device.PrimitiveTriangles, count)
}
