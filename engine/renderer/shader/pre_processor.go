// pre_processor.go implements the Oxy GLSL shader pre-processor. It scans shader
// source code for @oxy: annotations written as line comments and replaces them with
// shared GLSL chunks, so the per-kind sources declare the transform uniforms and the
// clip-plane helper exactly once.
//
// Supported annotation:
//
//	// @oxy:include <chunk>
//
// where <chunk> names an entry of the chunk registry (version, transform, clip).
package shader

import (
	"fmt"
	"slices"
	"strings"
)

const annotationPrefix = "@oxy:"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// chunks maps include names to their GLSL source.
	chunks map[string]string

	// includes records the chunk names expanded by the most recent Process call, in source order.
	includes []string
}

// PreProcessor expands @oxy: annotations in GLSL source.
type PreProcessor interface {
	// Process replaces every @oxy:include annotation with the registered chunk source.
	// Lines without annotations are kept as is.
	//
	// Parameters:
	//   - source: the raw GLSL source containing annotations
	//
	// Returns:
	//   - string: the expanded GLSL source
	//   - error: a line-numbered error for malformed annotations or unknown chunks
	Process(source string) (string, error)

	// Includes returns a copy of the chunk names expanded by the most recent Process call.
	//
	// Returns:
	//   - []string: chunk names in source order
	Includes() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the built-in chunk registry.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		chunks: map[string]string{
			"version":   versionChunk,
			"transform": transformChunk,
			"clip":      clipChunk,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.includes = nil

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		comment, ok := strings.CutPrefix(trimmed, "//")
		if !ok {
			out = append(out, line)
			continue
		}
		annotation, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		fields := strings.Fields(annotation)
		if len(fields) == 0 {
			return "", fmt.Errorf("line %d: empty @oxy: annotation", i+1)
		}
		switch fields[0] {
		case "include":
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: @oxy:include takes exactly one argument", i+1)
			}
			chunk, ok := p.chunks[fields[1]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, fields[1])
			}
			out = append(out, strings.TrimRight(chunk, "\n"))
			p.includes = append(p.includes, fields[1])
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, fields[0])
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []string {
	return slices.Clone(p.includes)
}
