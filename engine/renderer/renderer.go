package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	log "github.com/sirupsen/logrus"
)

// ErrShaderMismatch is returned when a drawable's Shader is not the ShaderSystem's shader
// for the kind the drawable declares.
var ErrShaderMismatch = errors.New("renderer: drawable shader does not match its declared kind")

// State is the read-only world state a frame is rendered from.
type State interface {
	// Camera returns the camera to take view and projection matrices from.
	// It is queried fresh for every drawable.
	Camera() camera.Camera
}

// Renderable is implemented by every drawable style. The Renderer binds the program of
// ShaderKind before it calls BufferAttributes and Render, so both may resolve locations
// against the bound program.
type Renderable interface {
	// ShaderKind returns the kind of program the drawable is drawn with.
	ShaderKind() shader.Kind

	// Shader returns the shader the drawable resolves locations against. It must be the
	// ShaderSystem's shader for ShaderKind.
	Shader() shader.Shader

	// BufferAttributes uploads the drawable's vertex data into the attribute slots of the
	// bound program.
	//
	// Parameters:
	//   - ctx: the device context
	//
	// Returns:
	//   - error: an error if the vertex data is malformed or an attribute is missing
	BufferAttributes(ctx device.Context) error

	// Render writes the drawable's uniforms and issues its draw call.
	//
	// Parameters:
	//   - ctx: the device context
	//   - state: the world state of the frame
	//
	// Returns:
	//   - error: an error if a uniform is missing from the program
	Render(ctx device.Context, state State) error
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	ctx     device.Context
	shaders shader.ShaderSystem

	width  int
	height int

	clearColor    [4]float32
	shaderOptions []shader.ShaderSystemBuilderOption
	logger        *log.Entry
}

// Renderer owns the ShaderSystem and dispatches drawables to it.
//
// A frame is rendered with Render: the viewport is set and cleared, then every drawable is
// dispatched in submission order. Each dispatch completes before the next begins, and the
// first failure aborts the frame. The Renderer is not safe for concurrent use.
type Renderer interface {
	// ShaderSystem returns the shader system the renderer binds programs through.
	//
	// Returns:
	//   - shader.ShaderSystem: the shader system
	ShaderSystem() shader.ShaderSystem

	// Shader is a shortcut for ShaderSystem().Shader that drawables are built from.
	//
	// Parameters:
	//   - kind: the shader kind
	//
	// Returns:
	//   - shader.Shader: the shader for kind, or nil if kind is outside the enumeration
	Shader(kind shader.Kind) shader.Shader

	// Resize sets the viewport used by the following frames.
	// This should be called when the framebuffer size changes.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	Resize(width, height int)

	// Render draws one frame.
	//
	// For every drawable, in order:
	//  1. the required kind is read from ShaderKind
	//  2. the program of that kind is bound through the ShaderSystem
	//  3. the drawable's Shader is checked against the system's shader for that kind
	//  4. BufferAttributes uploads its vertex data
	//  5. Render writes its uniforms and draws
	//
	// Parameters:
	//   - state: the world state of the frame
	//   - drawables: the drawables in submission order
	//
	// Returns:
	//   - error: the first dispatch error, wrapped with the drawable index and kind
	Render(state State, drawables ...Renderable) error

	// Close releases every program. The renderer must not be used afterwards.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on ctx and builds its ShaderSystem.
//
// Parameters:
//   - ctx: the live device context
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: the shader build error if any shader kind fails to compile or link
func NewRenderer(ctx device.Context, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		ctx:        ctx,
		clearColor: [4]float32{0.05, 0.05, 0.08, 1},
		logger:     log.WithField("component", "renderer"),
	}
	for _, opt := range options {
		opt(r)
	}

	ss, err := shader.NewShaderSystem(ctx, r.shaderOptions...)
	if err != nil {
		return nil, err
	}
	r.shaders = ss

	ctx.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	return r, nil
}

func (r *renderer) ShaderSystem() shader.ShaderSystem {
	return r.shaders
}

func (r *renderer) Shader(kind shader.Kind) shader.Shader {
	s, ok := r.shaders.Shader(kind)
	if !ok {
		return nil
	}
	return s
}

func (r *renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

func (r *renderer) Render(state State, drawables ...Renderable) error {
	if r.width > 0 && r.height > 0 {
		r.ctx.Viewport(0, 0, r.width, r.height)
	}
	r.ctx.Clear()

	for i, d := range drawables {
		if err := r.dispatch(state, d); err != nil {
			err = fmt.Errorf("renderer: drawable %d (%s): %w", i, d.ShaderKind(), err)
			r.logger.WithError(err).Error("frame aborted")
			return err
		}
	}
	return nil
}

// dispatch runs the full bind, buffer and render sequence for one drawable.
func (r *renderer) dispatch(state State, d Renderable) error {
	kind := d.ShaderKind()
	if err := r.shaders.UseProgram(kind); err != nil {
		return err
	}

	want, _ := r.shaders.Shader(kind)
	if d.Shader() != want {
		return ErrShaderMismatch
	}

	if err := d.BufferAttributes(r.ctx); err != nil {
		return err
	}
	return d.Render(r.ctx, state)
}

func (r *renderer) Close() {
	r.shaders.Close()
}
