package shader

import (
	log "github.com/sirupsen/logrus"
)

// ShaderSystemBuilderOption is a functional option applied to a ShaderSystem during construction.
type ShaderSystemBuilderOption func(*shaderSystem)

// WithSources replaces the built-in source pair of one kind. The sources go through the same
// pre-processing as the built-in ones.
//
// Parameters:
//   - kind: the shader kind whose sources are replaced
//   - vertex: the vertex stage source
//   - fragment: the fragment stage source
//
// Returns:
//   - ShaderSystemBuilderOption: a function that applies the sources option
func WithSources(kind Kind, vertex, fragment string) ShaderSystemBuilderOption {
	return func(ss *shaderSystem) {
		ss.sources[kind] = Sources{Vertex: vertex, Fragment: fragment}
	}
}

// WithLogger sets the logger used for build and bind diagnostics.
//
// Parameters:
//   - logger: the logger entry to use
//
// Returns:
//   - ShaderSystemBuilderOption: a function that applies the logger option
func WithLogger(logger *log.Entry) ShaderSystemBuilderOption {
	return func(ss *shaderSystem) {
		if logger != nil {
			ss.logger = logger
		}
	}
}
