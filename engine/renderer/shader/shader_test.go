package shader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device/devicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlatShader(t *testing.T) (Shader, *devicetest.Recorder) {
	t.Helper()
	pp := NewPreProcessor()
	vertex, err := pp.Process(flatVertexSource)
	require.NoError(t, err)
	fragment, err := pp.Process(flatFragmentSource)
	require.NoError(t, err)

	rec := devicetest.NewRecorder()
	s, err := NewShader(rec, KindFlat, vertex, fragment)
	require.NoError(t, err)
	return s, rec
}

func TestUniformLocationIsCached(t *testing.T) {
	s, rec := newFlatShader(t)

	first, err := s.UniformLocation("color")
	require.NoError(t, err)
	second, err := s.UniformLocation("color")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.Count("UniformLocation"))
}

func TestUniformLocationPerName(t *testing.T) {
	s, rec := newFlatShader(t)

	for range 3 {
		for _, name := range []string{"model", "view", "perspective"} {
			_, err := s.UniformLocation(name)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 3, rec.Count("UniformLocation"))
}

func TestUniformLocationMissing(t *testing.T) {
	s, _ := newFlatShader(t)

	_, err := s.UniformLocation("meshColor")

	var missing *MissingUniformError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "meshColor", missing.Name)
	assert.Equal(t, KindFlat, missing.Kind)
}

func TestMustUniformLocationPanicsOnMissing(t *testing.T) {
	s, _ := newFlatShader(t)

	assert.NotPanics(t, func() { s.MustUniformLocation("color") })
	assert.PanicsWithError(t, `shader: uniform "pointSize" not found in flat program`, func() {
		s.MustUniformLocation("pointSize")
	})
}

func TestAttribLocation(t *testing.T) {
	s, _ := newFlatShader(t)

	_, err := s.AttribLocation("position")
	assert.NoError(t, err)

	_, err = s.AttribLocation("normal")
	var missing *MissingAttribError
	assert.ErrorAs(t, err, &missing)
}

func TestNewShaderReleasesStages(t *testing.T) {
	s, rec := newFlatShader(t)

	assert.Equal(t, 2, rec.Count("DetachShader"))
	assert.Equal(t, 2, rec.Count("DeleteShader"))

	s.Delete()
	assert.True(t, rec.Deleted(s.Program()))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindMesh, KindFlat, KindPoint}, Kinds())
	for _, k := range Kinds() {
		assert.True(t, k.Valid())
		assert.NotEqual(t, "unknown", k.String())
	}
	assert.False(t, Kind(-1).Valid())
	assert.False(t, kindCount.Valid())
	assert.Equal(t, "unknown", Kind(9).String())
}
