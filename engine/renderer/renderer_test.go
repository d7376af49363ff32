package renderer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/styles"
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

func newState() renderer.State {
	return testState{cam: camera.NewCamera(camera.WithController(camera.NewCameraController()))}
}

func newRenderer(t *testing.T, options ...renderer.RendererBuilderOption) (renderer.Renderer, *devicetest.Recorder) {
	t.Helper()
	rec := devicetest.NewRecorder()
	r, err := renderer.NewRenderer(rec, options...)
	require.NoError(t, err)
	rec.Reset()
	return r, rec
}

var cloud = []float32{0, 0, 0, 1, 1, 1, -1, 2, 0}

// spy is a drawable that records the active kind seen by each dispatch step.
type spy struct {
	kind   shader.Kind
	shader shader.Shader
	ss     shader.ShaderSystem
	err    error

	events *[]string
}

func (s *spy) ShaderKind() shader.Kind { return s.kind }

func (s *spy) Shader() shader.Shader { return s.shader }

func (s *spy) BufferAttributes(device.Context) error {
	*s.events = append(*s.events, "buffer:"+s.kind.String()+":"+s.ss.Active().String())
	return nil
}

func (s *spy) Render(device.Context, renderer.State) error {
	*s.events = append(*s.events, "render:"+s.kind.String()+":"+s.ss.Active().String())
	return s.err
}

func newSpy(r renderer.Renderer, kind shader.Kind, events *[]string) *spy {
	return &spy{kind: kind, shader: r.Shader(kind), ss: r.ShaderSystem(), events: events}
}

func programs(r renderer.Renderer, kinds ...shader.Kind) []device.ProgramHandle {
	out := make([]device.ProgramHandle, len(kinds))
	for i, k := range kinds {
		out[i] = r.Shader(k).Program()
	}
	return out
}

func TestRenderAlternatingKindsBindEachTime(t *testing.T) {
	r, rec := newRenderer(t)
	state := newState()
	sphere := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	normals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}

	err := r.Render(state,
		styles.NewPoints(r.Shader(shader.KindPoint), cloud, styles.RenderOpts{}),
		styles.NewMesh(r.Shader(shader.KindMesh), sphere, normals, nil, styles.RenderOpts{}),
		styles.NewPoints(r.Shader(shader.KindPoint), cloud, styles.RenderOpts{}),
	)
	require.NoError(t, err)

	assert.Equal(t, programs(r, shader.KindPoint, shader.KindMesh, shader.KindPoint), rec.Binds())
	assert.Equal(t, shader.KindPoint, r.ShaderSystem().Active())
}

func TestRenderConsecutiveSameKindBindsOnce(t *testing.T) {
	r, rec := newRenderer(t)
	s := r.Shader(shader.KindPoint)

	err := r.Render(newState(),
		styles.NewPoints(s, cloud, styles.RenderOpts{}),
		styles.NewPoints(s, cloud, styles.RenderOpts{Pos: mgl32.Vec3{1, 0, 0}}),
		styles.NewPoints(s, cloud, styles.RenderOpts{Pos: mgl32.Vec3{2, 0, 0}}),
	)
	require.NoError(t, err)

	assert.Equal(t, programs(r, shader.KindPoint), rec.Binds())
	assert.Equal(t, 3, rec.Count("DrawArrays"))
}

func TestRenderMissingUniformNamesTheUniform(t *testing.T) {
	noColor := "// @oxy:include version\nout vec4 fragColor;\nvoid main() {\n    fragColor = vec4(1.0);\n}\n"
	vertex := "// @oxy:include version\nin vec3 position;\n// @oxy:include transform\n// @oxy:include clip\nuniform float pointSize;\nvoid main() {\n    gl_Position = perspective * view * model * vec4(position, 1.0);\n}\n"
	r, rec := newRenderer(t, renderer.WithShaderSystemOptions(shader.WithSources(shader.KindPoint, vertex, noColor)))

	err := r.Render(newState(), styles.NewPoints(r.Shader(shader.KindPoint), cloud, styles.RenderOpts{}))
	require.Error(t, err)

	var missing *shader.MissingUniformError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "color", missing.Name)
	assert.Equal(t, shader.KindPoint, missing.Kind)
	assert.Zero(t, rec.Count("DrawArrays"), "nothing is drawn with undefined uniform state")
}

func TestRenderBindsBeforeBufferingAndRendering(t *testing.T) {
	r, _ := newRenderer(t)
	var events []string
	kinds := []shader.Kind{shader.KindFlat, shader.KindPoint, shader.KindMesh, shader.KindMesh, shader.KindFlat}

	var drawables []renderer.Renderable
	for _, k := range kinds {
		drawables = append(drawables, newSpy(r, k, &events))
	}
	require.NoError(t, r.Render(newState(), drawables...))

	var want []string
	for _, k := range kinds {
		want = append(want, "buffer:"+k.String()+":"+k.String(), "render:"+k.String()+":"+k.String())
	}
	assert.Equal(t, want, events)
}

func TestRenderAbortsOnFirstError(t *testing.T) {
	r, _ := newRenderer(t)
	var events []string
	boom := errors.New("boom")

	failing := newSpy(r, shader.KindPoint, &events)
	failing.err = boom
	err := r.Render(newState(),
		newSpy(r, shader.KindFlat, &events),
		failing,
		newSpy(r, shader.KindMesh, &events),
	)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "drawable 1 (point)")
	assert.Equal(t, []string{"buffer:flat:flat", "render:flat:flat", "buffer:point:point", "render:point:point"}, events)
}

func TestRenderRejectsShaderMismatch(t *testing.T) {
	r, rec := newRenderer(t)
	var events []string

	d := newSpy(r, shader.KindPoint, &events)
	d.shader = r.Shader(shader.KindMesh)

	err := r.Render(newState(), d)
	require.ErrorIs(t, err, renderer.ErrShaderMismatch)
	assert.Empty(t, events)
	assert.Zero(t, rec.Count("BufferFloat32"))
}

func TestRenderRejectsUnknownKind(t *testing.T) {
	r, rec := newRenderer(t)
	var events []string

	err := r.Render(newState(), &spy{kind: shader.Kind(42), ss: r.ShaderSystem(), events: &events})
	require.ErrorIs(t, err, shader.ErrUnknownKind)
	assert.Empty(t, events)
	assert.Empty(t, rec.Binds())
	assert.Equal(t, shader.KindMesh, r.ShaderSystem().Active())
}

func TestRenderFramePrologue(t *testing.T) {
	r, rec := newRenderer(t, renderer.WithSize(320, 200))

	require.NoError(t, r.Render(newState()))
	assert.Equal(t, []string{"Viewport", "Clear"}, rec.Ops())
	assert.Equal(t, []any{0, 0, 320, 200}, rec.Calls()[0].Args)

	rec.Reset()
	r.Resize(800, 600)
	require.NoError(t, r.Render(newState()))
	assert.Equal(t, []any{0, 0, 800, 600}, rec.Calls()[0].Args)
}

func TestNewRendererSetsClearColor(t *testing.T) {
	rec := devicetest.NewRecorder()
	_, err := renderer.NewRenderer(rec, renderer.WithClearColor(0.1, 0.2, 0.3, 1))
	require.NoError(t, err)

	calls := rec.Filter("ClearColor")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{float32(0.1), float32(0.2), float32(0.3), float32(1)}, calls[0].Args)
}

func TestNewRendererReturnsShaderBuildError(t *testing.T) {
	rec := devicetest.NewRecorder()
	_, err := renderer.NewRenderer(rec, renderer.WithShaderSystemOptions(
		shader.WithSources(shader.KindFlat, "void main() {}", "void main() {}"),
	))

	var compileErr *shader.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, device.StageVertex, compileErr.Stage)
}

func TestRendererClose(t *testing.T) {
	r, rec := newRenderer(t)
	handles := programs(r, shader.Kinds()...)

	r.Close()
	for _, p := range handles {
		assert.True(t, rec.Deleted(p))
	}
}
