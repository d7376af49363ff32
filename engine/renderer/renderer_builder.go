package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	log "github.com/sirupsen/logrus"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the colour the framebuffer is cleared to at the start of each frame.
//
// Parameters:
//   - r, g, b, a: the clear colour components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(r, g, b, a float32) RendererBuilderOption {
	return func(rr *renderer) {
		rr.clearColor = [4]float32{r, g, b, a}
	}
}

// WithSize sets the initial viewport size. Equivalent to calling Resize after construction.
//
// Parameters:
//   - width: the framebuffer width in pixels
//   - height: the framebuffer height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithShaderSystemOptions forwards options to the ShaderSystem the renderer builds.
//
// Parameters:
//   - options: the shader system options
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader system options to a renderer
func WithShaderSystemOptions(options ...shader.ShaderSystemBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderOptions = append(r.shaderOptions, options...)
	}
}

// WithLogger sets the logger used for frame diagnostics.
//
// Parameters:
//   - logger: the logger entry to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *log.Entry) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
