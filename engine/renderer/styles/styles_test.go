package styles

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	cam camera.Camera
}

func (s testState) Camera() camera.Camera {
	return s.cam
}

func setup(t *testing.T) (renderer.Renderer, *devicetest.Recorder, testState) {
	t.Helper()
	rec := devicetest.NewRecorder()
	r, err := renderer.NewRenderer(rec)
	require.NoError(t, err)
	rec.Reset()

	cam := camera.NewCamera(
		camera.WithController(camera.NewCameraController()),
		camera.WithReflectionHeight(0),
	)
	return r, rec, testState{cam: cam}
}

// matrixAt returns the matrices written to the uniform name of s, in order.
func matrixAt(t *testing.T, rec *devicetest.Recorder, s shader.Shader, name string) []mgl32.Mat4 {
	t.Helper()
	loc, err := s.UniformLocation(name)
	require.NoError(t, err)

	var out []mgl32.Mat4
	for _, c := range rec.Filter("UniformMatrix4") {
		if c.Args[0] == loc {
			out = append(out, mgl32.Mat4(c.Args[1].([16]float32)))
		}
	}
	return out
}

func TestPointsDrawsOnePointPerVertex(t *testing.T) {
	r, rec, state := setup(t)
	s := r.Shader(shader.KindPoint)
	positions := []float32{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}

	require.NoError(t, r.Render(state, NewPoints(s, positions, RenderOpts{Pos: mgl32.Vec3{1, 2, 3}})))

	buffers := rec.Filter("BufferFloat32")
	require.Len(t, buffers, 1)
	assert.Equal(t, []any{len(positions), 3}, buffers[0].Args[1:])

	draws := rec.Filter("DrawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{device.PrimitivePoints, 0, 4}, draws[0].Args)

	assert.Equal(t, []mgl32.Mat4{mgl32.Translate3D(1, 2, 3)}, matrixAt(t, rec, s, "model"))
	assert.Equal(t, []mgl32.Mat4{state.Camera().ViewMatrix()}, matrixAt(t, rec, s, "view"))
	assert.Equal(t, []mgl32.Mat4{state.Camera().ProjectionMatrix()}, matrixAt(t, rec, s, "perspective"))
}

func TestFlipCameraYUsesMirroredView(t *testing.T) {
	r, rec, state := setup(t)
	s := r.Shader(shader.KindPoint)
	clip := mgl32.Vec4{0, -1, 0, 0}

	require.NoError(t, r.Render(state, NewPoints(s, []float32{0, 1, 0}, RenderOpts{ClipPlane: clip, FlipCameraY: true})))

	assert.Equal(t, []mgl32.Mat4{state.Camera().ViewFlippedYMatrix()}, matrixAt(t, rec, s, "view"))

	loc, err := s.UniformLocation("clipPlane")
	require.NoError(t, err)
	var planes []any
	for _, c := range rec.Filter("Uniform4") {
		if c.Args[0] == loc {
			planes = append(planes, c.Args[1])
		}
	}
	assert.Equal(t, []any{[4]float32(clip)}, planes)
}

func TestUniformLocationsResolvedOncePerShader(t *testing.T) {
	r, rec, state := setup(t)
	s := r.Shader(shader.KindPoint)
	p := NewPoints(s, []float32{0, 0, 0}, RenderOpts{})

	for range 3 {
		require.NoError(t, r.Render(state, p, p))
	}

	names := map[string]int{}
	for _, c := range rec.Filter("UniformLocation") {
		if c.Args[0] == s.Program() {
			names[c.Args[1].(string)]++
		}
	}
	assert.Equal(t, map[string]int{
		"model": 1, "view": 1, "perspective": 1, "clipPlane": 1, "pointSize": 1, "color": 1,
	}, names)
}

func TestMeshIndexedDraw(t *testing.T) {
	r, rec, state := setup(t)
	positions := []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	normals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	require.NoError(t, r.Render(state, NewMesh(r.Shader(shader.KindMesh), positions, normals, indices, RenderOpts{})))

	assert.Equal(t, 2, rec.Count("BufferFloat32"), "position and normal")
	assert.Equal(t, []any{len(indices)}, rec.Filter("BufferIndices")[0].Args)
	assert.Equal(t, []any{device.PrimitiveTriangles, len(indices)}, rec.Filter("DrawElements")[0].Args)
	assert.Zero(t, rec.Count("DrawArrays"))
	assert.Equal(t, 1, rec.Count("Uniform3"), "light direction")
}

func TestMeshTriangleListDraw(t *testing.T) {
	r, rec, state := setup(t)
	positions := []float32{0, 0, 0, 1, 0, 0, 1, 1, 0}
	normals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}

	require.NoError(t, r.Render(state, NewMesh(r.Shader(shader.KindMesh), positions, normals, nil, RenderOpts{})))

	assert.Zero(t, rec.Count("BufferIndices"))
	assert.Equal(t, []any{device.PrimitiveTriangles, 0, 3}, rec.Filter("DrawArrays")[0].Args)
}

func TestLinesAndWaterShareFlatProgram(t *testing.T) {
	r, rec, state := setup(t)
	flat := r.Shader(shader.KindFlat)
	axes := []float32{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0}
	quad := []float32{-1, 0, -1, 1, 0, -1, 1, 0, 1, -1, 0, -1, 1, 0, 1, -1, 0, 1}

	require.NoError(t, r.Render(state, NewLines(flat, axes, RenderOpts{}), NewWater(flat, quad, RenderOpts{})))

	assert.Equal(t, []device.ProgramHandle{flat.Program()}, rec.Binds())
	draws := rec.Filter("DrawArrays")
	require.Len(t, draws, 2)
	assert.Equal(t, []any{device.PrimitiveLines, 0, 4}, draws[0].Args)
	assert.Equal(t, []any{device.PrimitiveTriangles, 0, 6}, draws[1].Args)
}

func TestBadVertexData(t *testing.T) {
	r, rec, state := setup(t)
	point := r.Shader(shader.KindPoint)
	mesh := r.Shader(shader.KindMesh)
	flat := r.Shader(shader.KindFlat)

	tests := []struct {
		name     string
		drawable renderer.Renderable
	}{
		{"empty points", NewPoints(point, nil, RenderOpts{})},
		{"partial vertex", NewPoints(point, []float32{0, 1, 2, 3}, RenderOpts{})},
		{"normals mismatch", NewMesh(mesh, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []float32{0, 0, 1}, nil, RenderOpts{})},
		{"index out of range", NewMesh(mesh, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, []uint16{0, 1, 3}, RenderOpts{})},
		{"partial line", NewLines(flat, []float32{0, 0}, RenderOpts{})},
		{"empty water", NewWater(flat, []float32{}, RenderOpts{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Reset()
			err := r.Render(state, tt.drawable)
			require.ErrorIs(t, err, ErrBadVertexData)
			assert.Zero(t, rec.Count("BufferFloat32"))
			assert.Zero(t, rec.Count("DrawArrays")+rec.Count("DrawElements"))
		})
	}
}

func TestStyleKinds(t *testing.T) {
	assert.Equal(t, shader.KindPoint, (&Points{}).ShaderKind())
	assert.Equal(t, shader.KindMesh, (&Mesh{}).ShaderKind())
	assert.Equal(t, shader.KindFlat, (&Lines{}).ShaderKind())
	assert.Equal(t, shader.KindFlat, (&Water{}).ShaderKind())
}
