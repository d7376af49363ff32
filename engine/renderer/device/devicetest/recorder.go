// Package devicetest provides a GPU-free device.Context that records every call.
// It understands just enough GLSL to behave like a driver for the built-in sources:
// stages compile when they carry a #version line and a main function, programs link when
// every fragment input has a matching vertex output, and uniform/attribute lookups resolve
// against the declarations of the attached sources.
package devicetest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
)

// Call is one recorded context call.
type Call struct {
	// Op is the device.Context method name.
	Op string

	// Args holds the call arguments that matter for assertions.
	Args []any
}

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
	inDecl      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	outDecl     = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?out\s+\w+\s+(\w+)\s*;`)
)

type fakeShader struct {
	stage    device.Stage
	source   string
	compiled bool
	log      string
	deleted  bool
}

type fakeProgram struct {
	attached []device.ShaderHandle
	linked   bool
	log      string
	deleted  bool
	uniforms map[string]device.UniformLocation
	attribs  map[string]device.AttribLocation
}

// Recorder is a recording device.Context. The zero value is not usable; use NewRecorder.
type Recorder struct {
	calls    []Call
	shaders  map[device.ShaderHandle]*fakeShader
	programs map[device.ProgramHandle]*fakeProgram
	next     uint32

	// FailCreateShader makes CreateShader return an error.
	FailCreateShader bool
}

var _ device.Context = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		shaders:  make(map[device.ShaderHandle]*fakeShader),
		programs: make(map[device.ProgramHandle]*fakeProgram),
	}
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns the number of recorded calls to op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls to op in order.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Binds returns the program handles passed to UseProgram in order.
func (r *Recorder) Binds() []device.ProgramHandle {
	var out []device.ProgramHandle
	for _, c := range r.Filter("UseProgram") {
		out = append(out, c.Args[0].(device.ProgramHandle))
	}
	return out
}

// Reset drops the recorded calls but keeps the object state.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Deleted reports whether a program has been deleted.
func (r *Recorder) Deleted(p device.ProgramHandle) bool {
	prog, ok := r.programs[p]
	return ok && prog.deleted
}

// LiveShaders returns the number of shader objects that have not been deleted.
func (r *Recorder) LiveShaders() int {
	n := 0
	for _, s := range r.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

func (r *Recorder) record(op string, args ...any) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) CreateShader(stage device.Stage) (device.ShaderHandle, error) {
	r.record("CreateShader", stage)
	if r.FailCreateShader {
		return 0, fmt.Errorf("devicetest: %s shader: %w", stage, device.ErrObjectCreation)
	}
	r.next++
	h := device.ShaderHandle(r.next)
	r.shaders[h] = &fakeShader{stage: stage}
	return h, nil
}

func (r *Recorder) ShaderSource(s device.ShaderHandle, source string) {
	r.record("ShaderSource", s)
	if sh, ok := r.shaders[s]; ok {
		sh.source = source
	}
}

func (r *Recorder) CompileShader(s device.ShaderHandle) {
	r.record("CompileShader", s)
	sh, ok := r.shaders[s]
	if !ok {
		return
	}
	src := strings.TrimSpace(sh.source)
	switch {
	case !strings.HasPrefix(src, "#version"):
		sh.compiled = false
		sh.log = "0:1(1): error: missing #version directive"
	case !strings.Contains(src, "void main"):
		sh.compiled = false
		sh.log = "0:0(0): error: no main function defined"
	default:
		sh.compiled = true
		sh.log = ""
	}
}

func (r *Recorder) ShaderCompiled(s device.ShaderHandle) bool {
	r.record("ShaderCompiled", s)
	sh, ok := r.shaders[s]
	return ok && sh.compiled
}

func (r *Recorder) ShaderInfoLog(s device.ShaderHandle) string {
	r.record("ShaderInfoLog", s)
	if sh, ok := r.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (r *Recorder) DeleteShader(s device.ShaderHandle) {
	r.record("DeleteShader", s)
	if sh, ok := r.shaders[s]; ok {
		sh.deleted = true
	}
}

func (r *Recorder) CreateProgram() (device.ProgramHandle, error) {
	r.record("CreateProgram")
	r.next++
	h := device.ProgramHandle(r.next)
	r.programs[h] = &fakeProgram{}
	return h, nil
}

func (r *Recorder) AttachShader(p device.ProgramHandle, s device.ShaderHandle) {
	r.record("AttachShader", p, s)
	if prog, ok := r.programs[p]; ok {
		prog.attached = append(prog.attached, s)
	}
}

func (r *Recorder) DetachShader(p device.ProgramHandle, s device.ShaderHandle) {
	r.record("DetachShader", p, s)
}

func (r *Recorder) LinkProgram(p device.ProgramHandle) {
	r.record("LinkProgram", p)
	prog, ok := r.programs[p]
	if !ok {
		return
	}

	var vertex, fragment string
	for _, h := range prog.attached {
		sh := r.shaders[h]
		if sh == nil || !sh.compiled {
			prog.linked = false
			prog.log = "error: attached shader is not compiled"
			return
		}
		if sh.stage == device.StageVertex {
			vertex = sh.source
		} else {
			fragment = sh.source
		}
	}

	outputs := make(map[string]bool)
	for _, m := range outDecl.FindAllStringSubmatch(vertex, -1) {
		outputs[m[1]] = true
	}
	for _, m := range inDecl.FindAllStringSubmatch(fragment, -1) {
		if !outputs[m[1]] {
			prog.linked = false
			prog.log = fmt.Sprintf("error: fragment shader input `%s' has no matching vertex output", m[1])
			return
		}
	}

	prog.uniforms = make(map[string]device.UniformLocation)
	for _, src := range []string{vertex, fragment} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := prog.uniforms[m[1]]; !ok {
				prog.uniforms[m[1]] = device.UniformLocation(len(prog.uniforms))
			}
		}
	}
	prog.attribs = make(map[string]device.AttribLocation)
	for _, m := range inDecl.FindAllStringSubmatch(vertex, -1) {
		prog.attribs[m[1]] = device.AttribLocation(len(prog.attribs))
	}
	prog.linked = true
	prog.log = ""
}

func (r *Recorder) ProgramLinked(p device.ProgramHandle) bool {
	r.record("ProgramLinked", p)
	prog, ok := r.programs[p]
	return ok && prog.linked
}

func (r *Recorder) ProgramInfoLog(p device.ProgramHandle) string {
	r.record("ProgramInfoLog", p)
	if prog, ok := r.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (r *Recorder) DeleteProgram(p device.ProgramHandle) {
	r.record("DeleteProgram", p)
	if prog, ok := r.programs[p]; ok {
		prog.deleted = true
	}
}

func (r *Recorder) UseProgram(p device.ProgramHandle) {
	r.record("UseProgram", p)
}

func (r *Recorder) UniformLocation(p device.ProgramHandle, name string) (device.UniformLocation, bool) {
	r.record("UniformLocation", p, name)
	prog, ok := r.programs[p]
	if !ok || !prog.linked {
		return 0, false
	}
	loc, ok := prog.uniforms[name]
	return loc, ok
}

func (r *Recorder) AttribLocation(p device.ProgramHandle, name string) (device.AttribLocation, bool) {
	r.record("AttribLocation", p, name)
	prog, ok := r.programs[p]
	if !ok || !prog.linked {
		return 0, false
	}
	loc, ok := prog.attribs[name]
	return loc, ok
}

func (r *Recorder) BufferFloat32(loc device.AttribLocation, data []float32, size int) {
	r.record("BufferFloat32", loc, len(data), size)
}

func (r *Recorder) BufferIndices(indices []uint16) {
	r.record("BufferIndices", len(indices))
}

func (r *Recorder) UniformMatrix4(loc device.UniformLocation, m [16]float32) {
	r.record("UniformMatrix4", loc, m)
}

func (r *Recorder) Uniform4(loc device.UniformLocation, v [4]float32) {
	r.record("Uniform4", loc, v)
}

func (r *Recorder) Uniform3(loc device.UniformLocation, v [3]float32) {
	r.record("Uniform3", loc, v)
}

func (r *Recorder) Uniform1f(loc device.UniformLocation, v float32) {
	r.record("Uniform1f", loc, v)
}

func (r *Recorder) DrawArrays(mode device.Primitive, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode device.Primitive, count int) {
	r.record("DrawElements", mode, count)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.record("ClearColor", cr, cg, cb, ca)
}

func (r *Recorder) Clear() {
	r.record("Clear")
}
