package shader

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
)

// shader is the implementation of the Shader interface.
// It owns one linked program and the lazily filled uniform location cache for it.
type shader struct {
	kind    Kind
	ctx     device.Context
	program device.ProgramHandle

	// uniforms caches resolved uniform locations. Programs never change after linking,
	// so an entry is valid for the lifetime of the shader.
	uniforms map[string]device.UniformLocation
}

// Shader is one compiled and linked GPU program.
// A Shader is owned by the ShaderSystem; drawables borrow it for the duration of a draw.
// It is not safe for concurrent use.
type Shader interface {
	// Kind returns the shader kind this program was built for.
	//
	// Returns:
	//   - Kind: the shader kind
	Kind() Kind

	// Program returns the device program handle.
	//
	// Returns:
	//   - device.ProgramHandle: the linked program
	Program() device.ProgramHandle

	// UniformLocation resolves a uniform by name. The first call queries the device and
	// caches the result; later calls return the cached location without a device call.
	//
	// Parameters:
	//   - name: the uniform name as declared in the shader source
	//
	// Returns:
	//   - device.UniformLocation: the resolved location
	//   - error: a *MissingUniformError if the program has no such uniform
	UniformLocation(name string) (device.UniformLocation, error)

	// MustUniformLocation is like UniformLocation but panics with the *MissingUniformError.
	//
	// Parameters:
	//   - name: the uniform name as declared in the shader source
	//
	// Returns:
	//   - device.UniformLocation: the resolved location
	MustUniformLocation(name string) device.UniformLocation

	// AttribLocation resolves a vertex attribute by name against the program.
	//
	// Parameters:
	//   - name: the attribute name as declared in the vertex stage
	//
	// Returns:
	//   - device.AttribLocation: the resolved location
	//   - error: a *MissingAttribError if the program has no such attribute
	AttribLocation(name string) (device.AttribLocation, error)

	// Delete releases the program. The shader must not be used afterwards.
	Delete()
}

var _ Shader = &shader{}

// NewShader compiles the vertex and fragment sources independently and links them into one
// program. Stage objects are released once the program is linked, and every object created
// along the way is released on failure.
//
// Parameters:
//   - ctx: the device context to build the program on
//   - kind: the shader kind the program is built for
//   - vertexSource: the complete vertex stage source
//   - fragmentSource: the complete fragment stage source
//
// Returns:
//   - Shader: the linked shader with an empty uniform cache
//   - error: a *CompileError or *LinkError carrying the driver diagnostic, or a context error
func NewShader(ctx device.Context, kind Kind, vertexSource, fragmentSource string) (Shader, error) {
	vert, err := compileShader(ctx, device.StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	frag, err := compileShader(ctx, device.StageFragment, fragmentSource)
	if err != nil {
		ctx.DeleteShader(vert)
		return nil, err
	}
	program, err := linkProgram(ctx, vert, frag)
	if err != nil {
		return nil, err
	}

	return &shader{
		kind:     kind,
		ctx:      ctx,
		program:  program,
		uniforms: make(map[string]device.UniformLocation),
	}, nil
}

func (s *shader) Kind() Kind {
	return s.kind
}

func (s *shader) Program() device.ProgramHandle {
	return s.program
}

func (s *shader) UniformLocation(name string) (device.UniformLocation, error) {
	if loc, ok := s.uniforms[name]; ok {
		return loc, nil
	}
	loc, ok := s.ctx.UniformLocation(s.program, name)
	if !ok {
		return 0, &MissingUniformError{Kind: s.kind, Name: name}
	}
	s.uniforms[name] = loc
	return loc, nil
}

func (s *shader) MustUniformLocation(name string) device.UniformLocation {
	loc, err := s.UniformLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func (s *shader) AttribLocation(name string) (device.AttribLocation, error) {
	loc, ok := s.ctx.AttribLocation(s.program, name)
	if !ok {
		return 0, &MissingAttribError{Kind: s.kind, Name: name}
	}
	return loc, nil
}

func (s *shader) Delete() {
	s.ctx.DeleteProgram(s.program)
	s.uniforms = make(map[string]device.UniformLocation)
}

// compileShader creates and compiles one stage, releasing the stage object on failure.
func compileShader(ctx device.Context, stage device.Stage, source string) (device.ShaderHandle, error) {
	handle, err := ctx.CreateShader(stage)
	if err != nil {
		return 0, err
	}
	ctx.ShaderSource(handle, source)
	ctx.CompileShader(handle)
	if !ctx.ShaderCompiled(handle) {
		log := ctx.ShaderInfoLog(handle)
		ctx.DeleteShader(handle)
		if log == "" {
			log = "unknown error creating shader"
		}
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return handle, nil
}

// linkProgram links the two compiled stages. The stage objects are detached and released
// whether or not linking succeeds; the program is released on failure.
func linkProgram(ctx device.Context, vert, frag device.ShaderHandle) (device.ProgramHandle, error) {
	program, err := ctx.CreateProgram()
	if err != nil {
		ctx.DeleteShader(vert)
		ctx.DeleteShader(frag)
		return 0, err
	}
	ctx.AttachShader(program, vert)
	ctx.AttachShader(program, frag)
	ctx.LinkProgram(program)

	linked := ctx.ProgramLinked(program)
	var log string
	if !linked {
		log = ctx.ProgramInfoLog(program)
	}

	ctx.DetachShader(program, vert)
	ctx.DetachShader(program, frag)
	ctx.DeleteShader(vert)
	ctx.DeleteShader(frag)

	if !linked {
		ctx.DeleteProgram(program)
		if log == "" {
			log = "unknown error creating program"
		}
		return 0, &LinkError{Log: log}
	}
	return program, nil
}
