// Package device defines the boundary between the render core and the graphics context.
// Everything the shader system and the drawables need from the GPU goes through Context,
// which keeps the core testable without a live context and keeps the single backend
// (OpenGL 4.1 core, see package opengl) behind one seam.
package device

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	// StageVertex is the per-vertex stage.
	StageVertex Stage = iota

	// StageFragment is the per-fragment stage.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive selects the topology of a draw call.
type Primitive int

const (
	// PrimitivePoints draws one point per vertex.
	PrimitivePoints Primitive = iota

	// PrimitiveLines draws one segment per vertex pair.
	PrimitiveLines

	// PrimitiveTriangles draws one triangle per vertex triple.
	PrimitiveTriangles
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLines:
		return "lines"
	case PrimitiveTriangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// ShaderHandle is an opaque compiled-stage object.
type ShaderHandle uint32

// ProgramHandle is an opaque linked program object.
type ProgramHandle uint32

// UniformLocation is a resolved uniform slot within one program.
type UniformLocation int32

// AttribLocation is a resolved vertex attribute slot within one program.
type AttribLocation uint32

// Context is the live graphics context the render core drives.
// Implementations are not safe for concurrent use; the render path is single threaded.
type Context interface {
	// CreateShader allocates a shader object for the given stage.
	//
	// Parameters:
	//   - stage: the pipeline stage the shader object will hold
	//
	// Returns:
	//   - ShaderHandle: the new shader object
	//   - error: an error wrapping ErrObjectCreation if the context could not allocate one
	CreateShader(stage Stage) (ShaderHandle, error)

	// ShaderSource replaces the source text of a shader object.
	ShaderSource(s ShaderHandle, source string)

	// CompileShader compiles the current source of a shader object.
	CompileShader(s ShaderHandle)

	// ShaderCompiled reports the compile status of a shader object.
	ShaderCompiled(s ShaderHandle) bool

	// ShaderInfoLog returns the compiler diagnostic text of a shader object.
	ShaderInfoLog(s ShaderHandle) string

	// DeleteShader releases a shader object.
	DeleteShader(s ShaderHandle)

	// CreateProgram allocates a program object.
	//
	// Returns:
	//   - ProgramHandle: the new program object
	//   - error: an error wrapping ErrObjectCreation if the context could not allocate one
	CreateProgram() (ProgramHandle, error)

	// AttachShader attaches a compiled shader object to a program.
	AttachShader(p ProgramHandle, s ShaderHandle)

	// DetachShader detaches a shader object from a program.
	DetachShader(p ProgramHandle, s ShaderHandle)

	// LinkProgram links the shaders attached to a program.
	LinkProgram(p ProgramHandle)

	// ProgramLinked reports the link status of a program.
	ProgramLinked(p ProgramHandle) bool

	// ProgramInfoLog returns the linker diagnostic text of a program.
	ProgramInfoLog(p ProgramHandle) string

	// DeleteProgram releases a program object.
	DeleteProgram(p ProgramHandle)

	// UseProgram binds a program as the active program of the context.
	// Only the shader system may call this; see shader.ShaderSystem.
	UseProgram(p ProgramHandle)

	// UniformLocation queries the location of a named uniform.
	//
	// Parameters:
	//   - p: the program to query
	//   - name: the uniform name as declared in the shader source
	//
	// Returns:
	//   - UniformLocation: the location of the uniform
	//   - bool: false if the program has no active uniform with that name
	UniformLocation(p ProgramHandle, name string) (UniformLocation, bool)

	// AttribLocation queries the location of a named vertex attribute.
	//
	// Parameters:
	//   - p: the program to query
	//   - name: the attribute name as declared in the vertex stage
	//
	// Returns:
	//   - AttribLocation: the location of the attribute
	//   - bool: false if the program has no active attribute with that name
	AttribLocation(p ProgramHandle, name string) (AttribLocation, bool)

	// BufferFloat32 uploads tightly packed float data to an attribute slot, enables the
	// slot and points it at the uploaded data with size components per vertex.
	BufferFloat32(loc AttribLocation, data []float32, size int)

	// BufferIndices uploads index data used by the next DrawElements call.
	BufferIndices(indices []uint16)

	// UniformMatrix4 writes a column-major 4x4 matrix to a uniform.
	UniformMatrix4(loc UniformLocation, m [16]float32)

	// Uniform4 writes a vec4 to a uniform.
	Uniform4(loc UniformLocation, v [4]float32)

	// Uniform3 writes a vec3 to a uniform.
	Uniform3(loc UniformLocation, v [3]float32)

	// Uniform1f writes a float to a uniform.
	Uniform1f(loc UniformLocation, v float32)

	// DrawArrays draws count vertices starting at first from the enabled attribute arrays.
	DrawArrays(mode Primitive, first, count int)

	// DrawElements draws count indices from the last uploaded index buffer.
	DrawElements(mode Primitive, count int)

	// Viewport sets the viewport rectangle in pixels.
	Viewport(x, y, width, height int)

	// ClearColor sets the colour used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears the colour and depth buffers.
	Clear()
}
