// Package geometry generates the vertex buffers the scene draws: a UV sphere, the ground
// plane, the water quad and the axis lines. Every buffer is a flat xyz sequence.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	minBands = 3

	// maxBands keeps (bands+1)^2 vertices addressable by uint16 indices.
	maxBands = 180
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	// Positions is the xyz position buffer.
	Positions []float32

	// Normals is the xyz normal buffer, one unit normal per position.
	Normals []float32

	// Indices lists three vertex indices per triangle.
	Indices []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Sphere generates a UV sphere centred on the origin.
// Band counts are clamped to [3, 180].
//
// Parameters:
//   - radius: the sphere radius
//   - latBands: the number of bands from pole to pole
//   - lonBands: the number of bands around the Y axis
//
// Returns:
//   - Mesh: (latBands+1)*(lonBands+1) vertices and 6*latBands*lonBands indices
func Sphere(radius float32, latBands, lonBands int) Mesh {
	latBands = clampBands(latBands)
	lonBands = clampBands(lonBands)

	vertices := (latBands + 1) * (lonBands + 1)
	m := Mesh{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		Indices:   make([]uint16, 0, latBands*lonBands*6),
	}

	for lat := 0; lat <= latBands; lat++ {
		theta := float64(lat) * math.Pi / float64(latBands)
		sinTheta, cosTheta := math.Sincos(theta)

		for lon := 0; lon <= lonBands; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(lonBands)
			sinPhi, cosPhi := math.Sincos(phi)

			n := mgl32.Vec3{float32(cosPhi * sinTheta), float32(cosTheta), float32(sinPhi * sinTheta)}
			p := n.Mul(radius)
			m.Normals = append(m.Normals, n[:]...)
			m.Positions = append(m.Positions, p[:]...)
		}
	}

	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < lonBands; lon++ {
			first := uint16(lat*(lonBands+1) + lon)
			second := first + uint16(lonBands+1)
			m.Indices = append(m.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return m
}

// Plane generates a square horizontal plane facing +Y.
//
// Parameters:
//   - size: the edge length
//   - y: the height of the plane
//
// Returns:
//   - Mesh: four vertices and two triangles
func Plane(size, y float32) Mesh {
	h := size / 2
	return Mesh{
		Positions: []float32{
			-h, y, -h,
			h, y, -h,
			h, y, h,
			-h, y, h,
		},
		Normals: []float32{
			0, 1, 0,
			0, 1, 0,
			0, 1, 0,
			0, 1, 0,
		},
		Indices: []uint16{0, 2, 1, 0, 3, 2},
	}
}

// Quad generates a square horizontal surface as a plain triangle list.
//
// Parameters:
//   - size: the edge length
//   - y: the height of the surface
//
// Returns:
//   - []float32: six xyz vertices
func Quad(size, y float32) []float32 {
	h := size / 2
	return []float32{
		-h, y, -h,
		-h, y, h,
		h, y, h,
		-h, y, -h,
		h, y, h,
		h, y, -h,
	}
}

// Axes generates the X, Y and Z axis segments from the origin as a line list.
//
// Parameters:
//   - length: the length of each axis
//
// Returns:
//   - []float32: six xyz vertices, two per axis
func Axes(length float32) []float32 {
	return []float32{
		0, 0, 0, length, 0, 0,
		0, 0, 0, 0, length, 0,
		0, 0, 0, 0, 0, length,
	}
}

// ClipPlane returns the plane through point with the given normal in the form (a, b, c, d).
// Positions on the side the normal points to give a non-negative distance and are kept.
//
// Parameters:
//   - normal: the plane normal
//   - point: any point on the plane
//
// Returns:
//   - mgl32.Vec4: the plane coefficients
func ClipPlane(normal, point mgl32.Vec3) mgl32.Vec4 {
	n := normal.Normalize()
	return n.Vec4(-n.Dot(point))
}

func clampBands(n int) int {
	return max(minBands, min(maxBands, n))
}
