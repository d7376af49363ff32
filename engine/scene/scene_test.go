package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/styles"
	"github.com/Carmen-Shannon/oxy-gl/engine/simulation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, bodies int, options ...SceneBuilderOption) Scene {
	t.Helper()
	sim := simulation.NewSimulation(simulation.WithBodyCount(bodies), simulation.WithWorkers(2))
	s := NewScene(append([]SceneBuilderOption{WithSimulation(sim)}, options...)...)
	t.Cleanup(s.Close)
	return s
}

func newTestRenderer(t *testing.T) (renderer.Renderer, *devicetest.Recorder) {
	t.Helper()
	rec := devicetest.NewRecorder()
	r, err := renderer.NewRenderer(rec)
	require.NoError(t, err)
	rec.Reset()
	return r, rec
}

func kinds(drawables []renderer.Renderable) []shader.Kind {
	out := make([]shader.Kind, len(drawables))
	for i, d := range drawables {
		out[i] = d.ShaderKind()
	}
	return out
}

func TestDrawablesOrder(t *testing.T) {
	s := newTestScene(t, 16)
	r, _ := newTestRenderer(t)

	ds := s.Drawables(r)
	require.Len(t, ds, 6)
	assert.Equal(t, []shader.Kind{
		shader.KindMesh, shader.KindPoint, shader.KindMesh, shader.KindPoint, shader.KindFlat, shader.KindFlat,
	}, kinds(ds))

	assert.IsType(t, &styles.Mesh{}, ds[0])
	assert.IsType(t, &styles.Points{}, ds[1])
	assert.IsType(t, &styles.Mesh{}, ds[2])
	assert.IsType(t, &styles.Points{}, ds[3])
	assert.IsType(t, &styles.Lines{}, ds[4])
	assert.IsType(t, &styles.Water{}, ds[5])

	for _, d := range ds {
		assert.Same(t, r.Shader(d.ShaderKind()), d.Shader())
	}
}

func TestReflectedPointsAreMirroredAndClipped(t *testing.T) {
	s := newTestScene(t, 16, WithWater(0.5, 10))
	r, _ := newTestRenderer(t)

	ds := s.Drawables(r)
	reflected := ds[1].(*styles.Points)
	direct := ds[3].(*styles.Points)

	assert.True(t, reflected.Opts.FlipCameraY)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, -0.5}, reflected.Opts.ClipPlane)
	assert.Less(t, reflected.Color[3], direct.Color[3])

	assert.False(t, direct.Opts.FlipCameraY)
	assert.Equal(t, mgl32.Vec4{}, direct.Opts.ClipPlane)
	assert.InDelta(t, 0.5, s.Camera().ReflectionHeight(), 1e-6)
}

func TestDrawablesBorrowSimulationPositions(t *testing.T) {
	s := newTestScene(t, 16, WithPointSize(9))
	r, _ := newTestRenderer(t)

	points := s.Drawables(r)[3].(*styles.Points)
	positions := s.Simulation().Positions()
	require.NotEmpty(t, positions)
	assert.Same(t, &positions[0], &points.Positions[0])
	assert.Equal(t, float32(9), points.Size)
}

func TestDrawablesOptionalPasses(t *testing.T) {
	s := newTestScene(t, 16, WithReflections(false), WithShowAxes(false))
	r, _ := newTestRenderer(t)

	assert.Equal(t, []shader.Kind{shader.KindMesh, shader.KindMesh, shader.KindPoint, shader.KindFlat}, kinds(s.Drawables(r)))
}

func TestDrawablesWithoutBodies(t *testing.T) {
	s := newTestScene(t, 0)
	r, _ := newTestRenderer(t)

	ds := s.Drawables(r)
	assert.Equal(t, []shader.Kind{shader.KindMesh, shader.KindMesh, shader.KindFlat, shader.KindFlat}, kinds(ds))
	assert.Equal(t, mgl32.Vec3{}, ds[1].(*styles.Mesh).Opts.Pos)
	require.NoError(t, r.Render(s, ds...))
}

func TestSphereSitsAtCentreOfMass(t *testing.T) {
	sim := simulation.NewSimulation(simulation.WithWorkers(1), simulation.WithBodies([]simulation.Body{
		{Pos: mgl32.Vec3{1, 2, 0}, Mass: 1},
		{Pos: mgl32.Vec3{-3, 2, 4}, Mass: 3},
	}))
	s := NewScene(WithSimulation(sim))
	t.Cleanup(s.Close)
	r, _ := newTestRenderer(t)

	sphere := s.Drawables(r)[2].(*styles.Mesh)
	assert.InDelta(t, -2, sphere.Opts.Pos.X(), 1e-6)
	assert.InDelta(t, 2, sphere.Opts.Pos.Y(), 1e-6)
	assert.InDelta(t, 3, sphere.Opts.Pos.Z(), 1e-6)
}

func TestFrameRendersWithOneBindPerKindRun(t *testing.T) {
	s := newTestScene(t, 16)
	r, rec := newTestRenderer(t)

	require.NoError(t, r.Render(s, s.Drawables(r)...))

	// The mesh program is bound when the shader system is built, so the ground mesh that
	// opens the frame does not bind again.
	want := []device.ProgramHandle{
		r.Shader(shader.KindPoint).Program(),
		r.Shader(shader.KindMesh).Program(),
		r.Shader(shader.KindPoint).Program(),
		r.Shader(shader.KindFlat).Program(),
	}
	assert.Equal(t, want, rec.Binds())
	assert.Equal(t, 4, rec.Count("UseProgram"))
	assert.Equal(t, 2, rec.Count("DrawElements"))
	assert.Equal(t, 4, rec.Count("DrawArrays"))
}

func TestTickHonoursPause(t *testing.T) {
	s := newTestScene(t, 16, WithPaused(true))
	assert.True(t, s.Paused())

	s.Tick(0.01)
	assert.Zero(t, s.Quantities().Steps)

	s.SetPaused(false)
	s.Tick(0.01)
	s.Tick(0.01)
	assert.Equal(t, uint64(2), s.Quantities().Steps)

	s.Reset()
	assert.Zero(t, s.Quantities().Steps)
}

func TestTickUpdatesCamera(t *testing.T) {
	s := newTestScene(t, 4)
	ctrl := s.Camera().Controller()
	require.NotNil(t, ctrl)

	before := s.Camera().ViewMatrix()
	ctrl.Orbit(0.5, 0)
	s.Tick(0.01)
	assert.NotEqual(t, before, s.Camera().ViewMatrix())
}
