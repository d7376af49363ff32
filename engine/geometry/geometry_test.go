package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec3At(buf []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

func TestSphereCounts(t *testing.T) {
	m := Sphere(2, 8, 12)

	assert.Equal(t, 9*13, m.VertexCount())
	assert.Len(t, m.Normals, len(m.Positions))
	assert.Len(t, m.Indices, 6*8*12)
}

func TestSphereVerticesOnSurface(t *testing.T) {
	m := Sphere(2, 10, 10)

	for i := 0; i < m.VertexCount(); i++ {
		n := vec3At(m.Normals, i)
		p := vec3At(m.Positions, i)
		require.InDelta(t, 1, n.Len(), 1e-5, "normal %d", i)
		require.InDelta(t, 2, p.Len(), 1e-5, "position %d", i)
		require.True(t, p.ApproxEqualThreshold(n.Mul(2), 1e-5))
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	m := Sphere(1, 180, 180)

	count := m.VertexCount()
	for i, idx := range m.Indices {
		require.Less(t, int(idx), count, "index %d", i)
	}
}

func TestSphereClampsBands(t *testing.T) {
	assert.Equal(t, 4*4, Sphere(1, 0, -5).VertexCount())
	assert.Equal(t, 181*181, Sphere(1, 1000, 1000).VertexCount())
}

func TestPlane(t *testing.T) {
	m := Plane(4, -1)

	require.Equal(t, 4, m.VertexCount())
	for i := 0; i < 4; i++ {
		p := vec3At(m.Positions, i)
		assert.Equal(t, float32(-1), p.Y())
		assert.Equal(t, float32(2), mgl32.Abs(p.X()))
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, vec3At(m.Normals, i))
	}
	assert.Len(t, m.Indices, 6)
}

func TestPlaneTrianglesFaceUp(t *testing.T) {
	m := Plane(2, 0)

	for tri := 0; tri < len(m.Indices); tri += 3 {
		a := vec3At(m.Positions, int(m.Indices[tri]))
		b := vec3At(m.Positions, int(m.Indices[tri+1]))
		c := vec3At(m.Positions, int(m.Indices[tri+2]))
		normal := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, normal.Y(), float32(0), "triangle %d winds counter-clockwise from above", tri/3)
	}
}

func TestQuad(t *testing.T) {
	q := Quad(6, 0.5)

	require.Len(t, q, 18)
	for i := 0; i < 6; i++ {
		assert.Equal(t, float32(0.5), vec3At(q, i).Y())
	}
}

func TestAxes(t *testing.T) {
	a := Axes(3)

	require.Len(t, a, 18)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, vec3At(a, 1))
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, vec3At(a, 3))
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, vec3At(a, 5))
}

func TestClipPlane(t *testing.T) {
	plane := ClipPlane(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{5, 1, -3})
	assert.Equal(t, mgl32.Vec4{0, 1, 0, -1}, plane)

	above := mgl32.Vec4{0, 3, 0, 1}
	below := mgl32.Vec4{0, -3, 0, 1}
	assert.Greater(t, plane.Dot(above), float32(0))
	assert.Less(t, plane.Dot(below), float32(0))
}
