package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	log "github.com/sirupsen/logrus"
)

// defaultKind is bound when the ShaderSystem is created.
const defaultKind = KindMesh

// shaderSystem is the implementation of the ShaderSystem interface.
type shaderSystem struct {
	ctx     device.Context
	shaders map[Kind]Shader

	// active is the kind whose program is bound on the device. It is the only record of
	// the binding and is never derived by querying the device.
	active Kind

	sources map[Kind]Sources
	logger  *log.Entry
}

// ShaderSystem owns one Shader per Kind and the record of which program is bound.
// Every program bind goes through UseProgram; binding a program any other way breaks the
// Active record. It is not safe for concurrent use.
type ShaderSystem interface {
	// Shader looks up the shader of a kind.
	//
	// Parameters:
	//   - kind: the shader kind
	//
	// Returns:
	//   - Shader: the shader for the kind
	//   - bool: false only if kind is outside the enumeration
	Shader(kind Kind) (Shader, bool)

	// UseProgram binds the program of kind. If kind is already active this is a no-op and no
	// device call is made; otherwise exactly one bind is issued and kind becomes active.
	//
	// Parameters:
	//   - kind: the shader kind to activate
	//
	// Returns:
	//   - error: ErrUnknownKind if kind is outside the enumeration
	UseProgram(kind Kind) error

	// Active returns the kind whose program is currently bound.
	//
	// Returns:
	//   - Kind: the active kind
	Active() Kind

	// Close deletes every program. The system must not be used afterwards.
	Close()
}

var _ ShaderSystem = &shaderSystem{}

// NewShaderSystem builds the shader of every kind from its source pair and binds the mesh
// program as the initial active program. Building stops at the first failure; shaders built
// before it are deleted and the error is returned wrapped with the failing kind.
//
// Parameters:
//   - ctx: the device context to build on
//   - options: functional options to configure the system
//
// Returns:
//   - ShaderSystem: the ready shader system
//   - error: the first *CompileError, *LinkError or pre-processing error encountered
func NewShaderSystem(ctx device.Context, options ...ShaderSystemBuilderOption) (ShaderSystem, error) {
	ss := &shaderSystem{
		ctx:     ctx,
		shaders: make(map[Kind]Shader, kindCount),
		sources: builtinSources(),
		logger:  log.WithField("component", "shader"),
	}
	for _, opt := range options {
		opt(ss)
	}

	pp := NewPreProcessor()
	for _, kind := range Kinds() {
		s, err := ss.build(pp, kind)
		if err != nil {
			ss.Close()
			return nil, fmt.Errorf("shader: build %s: %w", kind, err)
		}
		ss.shaders[kind] = s
		ss.logger.WithFields(log.Fields{
			"kind":    kind.String(),
			"program": s.Program(),
		}).Debug("shader program linked")
	}

	ctx.UseProgram(ss.shaders[defaultKind].Program())
	ss.active = defaultKind
	return ss, nil
}

// build pre-processes and compiles the source pair of one kind.
func (ss *shaderSystem) build(pp PreProcessor, kind Kind) (Shader, error) {
	src, ok := ss.sources[kind]
	if !ok {
		return nil, fmt.Errorf("no sources registered")
	}
	vertex, err := pp.Process(src.Vertex)
	if err != nil {
		return nil, fmt.Errorf("vertex source: %w", err)
	}
	fragment, err := pp.Process(src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("fragment source: %w", err)
	}
	return NewShader(ss.ctx, kind, vertex, fragment)
}

func (ss *shaderSystem) Shader(kind Kind) (Shader, bool) {
	s, ok := ss.shaders[kind]
	return s, ok
}

func (ss *shaderSystem) UseProgram(kind Kind) error {
	if kind == ss.active {
		return nil
	}
	s, ok := ss.shaders[kind]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	ss.ctx.UseProgram(s.Program())
	ss.logger.WithFields(log.Fields{"from": ss.active.String(), "to": kind.String()}).Trace("program bound")
	ss.active = kind
	return nil
}

func (ss *shaderSystem) Active() Kind {
	return ss.active
}

func (ss *shaderSystem) Close() {
	for kind, s := range ss.shaders {
		s.Delete()
		delete(ss.shaders, kind)
	}
}
