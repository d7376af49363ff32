// Package opengl implements device.Context on top of OpenGL 4.1 core through go-gl.
// The OpenGL context must be current on the calling thread (see window.NewWindow).
package opengl

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
	"github.com/go-gl/gl/v4.1-core/gl"
	log "github.com/sirupsen/logrus"
)

// glContext is the go-gl implementation of device.Context.
type glContext struct {
	// vao is the single vertex array object the core profile requires to be bound for draws.
	vao uint32

	// attribBuffers holds one streaming array buffer per attribute slot.
	attribBuffers map[device.AttribLocation]uint32

	// indexBuffer is the streaming element buffer used by DrawElements.
	indexBuffer uint32
}

// Context is a device.Context backed by the current OpenGL context.
type Context interface {
	device.Context

	// Close releases the vertex array object and the streaming buffers.
	Close()
}

var _ Context = &glContext{}

// NewContext loads the OpenGL function pointers for the current context and prepares the
// fixed pipeline state the render core relies on (depth test, blending, program point size
// and the first user clip distance).
//
// Returns:
//   - Context: the ready-to-use context
//   - error: a *device.ContextCreationError if OpenGL could not be initialized
func NewContext() (Context, error) {
	if err := gl.Init(); err != nil {
		return nil, &device.ContextCreationError{Reason: "failed to initialize OpenGL", Err: err}
	}

	c := &glContext{
		attribBuffers: make(map[device.AttribLocation]uint32),
	}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.indexBuffer)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.CLIP_DISTANCE0)

	log.WithFields(log.Fields{
		"version":  gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer": gl.GoStr(gl.GetString(gl.RENDERER)),
	}).Info("opengl context ready")
	return c, nil
}

func (c *glContext) CreateShader(stage device.Stage) (device.ShaderHandle, error) {
	var handle uint32
	switch stage {
	case device.StageVertex:
		handle = gl.CreateShader(gl.VERTEX_SHADER)
	case device.StageFragment:
		handle = gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return 0, fmt.Errorf("opengl: unsupported shader stage %s", stage)
	}
	if handle == 0 {
		return 0, fmt.Errorf("opengl: %s shader: %w", stage, device.ErrObjectCreation)
	}
	return device.ShaderHandle(handle), nil
}

func (c *glContext) ShaderSource(s device.ShaderHandle, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(uint32(s), 1, csources, nil)
}

func (c *glContext) CompileShader(s device.ShaderHandle) {
	gl.CompileShader(uint32(s))
}

func (c *glContext) ShaderCompiled(s device.ShaderHandle) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ShaderInfoLog(s device.ShaderHandle) string {
	return infoLog(uint32(s), gl.GetShaderiv, gl.GetShaderInfoLog)
}

func (c *glContext) DeleteShader(s device.ShaderHandle) {
	gl.DeleteShader(uint32(s))
}

func (c *glContext) CreateProgram() (device.ProgramHandle, error) {
	handle := gl.CreateProgram()
	if handle == 0 {
		return 0, fmt.Errorf("opengl: program: %w", device.ErrObjectCreation)
	}
	return device.ProgramHandle(handle), nil
}

func (c *glContext) AttachShader(p device.ProgramHandle, s device.ShaderHandle) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *glContext) DetachShader(p device.ProgramHandle, s device.ShaderHandle) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (c *glContext) LinkProgram(p device.ProgramHandle) {
	gl.LinkProgram(uint32(p))
}

func (c *glContext) ProgramLinked(p device.ProgramHandle) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ProgramInfoLog(p device.ProgramHandle) string {
	return infoLog(uint32(p), gl.GetProgramiv, gl.GetProgramInfoLog)
}

func (c *glContext) DeleteProgram(p device.ProgramHandle) {
	gl.DeleteProgram(uint32(p))
}

func (c *glContext) UseProgram(p device.ProgramHandle) {
	gl.UseProgram(uint32(p))
}

func (c *glContext) UniformLocation(p device.ProgramHandle, name string) (device.UniformLocation, bool) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return device.UniformLocation(loc), true
}

func (c *glContext) AttribLocation(p device.ProgramHandle, name string) (device.AttribLocation, bool) {
	loc := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return device.AttribLocation(loc), true
}

func (c *glContext) BufferFloat32(loc device.AttribLocation, data []float32, size int) {
	buf, ok := c.attribBuffers[loc]
	if !ok {
		gl.GenBuffers(1, &buf)
		c.attribBuffers[loc] = buf
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
	}
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (c *glContext) BufferIndices(indices []uint16) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.indexBuffer)
	if len(indices) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STREAM_DRAW)
}

func (c *glContext) UniformMatrix4(loc device.UniformLocation, m [16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *glContext) Uniform4(loc device.UniformLocation, v [4]float32) {
	gl.Uniform4fv(int32(loc), 1, &v[0])
}

func (c *glContext) Uniform3(loc device.UniformLocation, v [3]float32) {
	gl.Uniform3fv(int32(loc), 1, &v[0])
}

func (c *glContext) Uniform1f(loc device.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (c *glContext) DrawArrays(mode device.Primitive, first, count int) {
	gl.DrawArrays(primitive(mode), int32(first), int32(count))
}

func (c *glContext) DrawElements(mode device.Primitive, count int) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.indexBuffer)
	gl.DrawElements(primitive(mode), int32(count), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

func (c *glContext) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *glContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *glContext) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *glContext) Close() {
	for loc, buf := range c.attribBuffers {
		gl.DeleteBuffers(1, &buf)
		delete(c.attribBuffers, loc)
	}
	if c.indexBuffer != 0 {
		gl.DeleteBuffers(1, &c.indexBuffer)
		c.indexBuffer = 0
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// primitive maps a device.Primitive to its OpenGL draw mode.
func primitive(mode device.Primitive) uint32 {
	switch mode {
	case device.PrimitivePoints:
		return gl.POINTS
	case device.PrimitiveLines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}

type getObjIv func(uint32, uint32, *int32)
type getObjInfoLog func(uint32, int32, *int32, *uint8)

// infoLog reads the full diagnostic log of a shader or program object.
func infoLog(handle uint32, getObjIvFn getObjIv, getObjInfoLogFn getObjInfoLog) string {
	var logLength int32
	getObjIvFn(handle, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	buf := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	getObjInfoLogFn(handle, logLength, nil, buf)
	return strings.TrimRight(gl.GoStr(buf), "\x00\n")
}
