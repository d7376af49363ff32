package shader

import _ "embed"

var (
	//go:embed glsl/version.glsl
	versionChunk string

	//go:embed glsl/transform.glsl
	transformChunk string

	//go:embed glsl/clip.glsl
	clipChunk string

	//go:embed glsl/mesh-vertex.glsl
	meshVertexSource string

	//go:embed glsl/mesh-fragment.glsl
	meshFragmentSource string

	//go:embed glsl/flat-vertex.glsl
	flatVertexSource string

	//go:embed glsl/flat-fragment.glsl
	flatFragmentSource string

	//go:embed glsl/point-vertex.glsl
	pointVertexSource string

	//go:embed glsl/point-fragment.glsl
	pointFragmentSource string
)

// Sources is the vertex/fragment source pair of one shader kind, before pre-processing.
type Sources struct {
	Vertex   string
	Fragment string
}

// builtinSources returns the embedded source pair of every kind.
func builtinSources() map[Kind]Sources {
	return map[Kind]Sources{
		KindMesh:  {Vertex: meshVertexSource, Fragment: meshFragmentSource},
		KindFlat:  {Vertex: flatVertexSource, Fragment: flatFragmentSource},
		KindPoint: {Vertex: pointVertexSource, Fragment: pointFragmentSource},
	}
}
