package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device"
)

// ErrUnknownKind is returned for a Kind outside the enumeration.
var ErrUnknownKind = errors.New("shader: unknown shader kind")

// CompileError reports that one stage failed to compile.
type CompileError struct {
	// Stage is the stage that failed.
	Stage device.Stage

	// Log is the compiler diagnostic text.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s stage failed to compile: %s", e.Stage, e.Log)
}

// LinkError reports that the compiled stages could not be linked into a program.
type LinkError struct {
	// Log is the linker diagnostic text.
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: program failed to link: %s", e.Log)
}

// MissingUniformError reports a uniform lookup that found no uniform of that name in the
// program. It means the drawable and the shader source disagree, so rendering must stop.
type MissingUniformError struct {
	// Kind is the shader kind that was queried.
	Kind Kind

	// Name is the uniform name that was requested.
	Name string
}

func (e *MissingUniformError) Error() string {
	return fmt.Sprintf("shader: uniform %q not found in %s program", e.Name, e.Kind)
}

// MissingAttribError reports an attribute lookup that found no attribute of that name.
type MissingAttribError struct {
	// Kind is the shader kind that was queried.
	Kind Kind

	// Name is the attribute name that was requested.
	Name string
}

func (e *MissingAttribError) Error() string {
	return fmt.Sprintf("shader: attribute %q not found in %s program", e.Name, e.Kind)
}
