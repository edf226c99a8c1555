package tetgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointMatrix(t *testing.T) {
	quietLogger(t)
	ma, err := Convert(twoTetRaw())
	require.NoError(t, err)

	X := ma.PointMatrix()
	nr, nc := X.Dims()
	assert.Equal(t, 5, nr)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 1., X.At(4, 2))
	assert.Equal(t, 1., X.At(2, 1))

	EToV := ma.TetMatrix()
	nr, nc = EToV.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 4, nc)
	assert.Equal(t, 4., EToV.At(1, 3))
}

func TestVertexTetIncidence(t *testing.T) {
	quietLogger(t)
	ma, err := Convert(twoTetRaw())
	require.NoError(t, err)

	inc := ma.VertexTetIncidence()
	nr, nc := inc.Dims()
	assert.Equal(t, 5, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 1., inc.At(0, 0))
	assert.Equal(t, 0., inc.At(0, 1))
	assert.Equal(t, 0., inc.At(4, 0))
	assert.Equal(t, 1., inc.At(4, 1))
	assert.Equal(t, []int{1, 2, 2, 2, 1}, ma.VertexValence())
	lo, hi, mean := ma.ValenceStats()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)
	assert.InDelta(t, 1.6, mean, 1e-12)
}

func TestBounds(t *testing.T) {
	quietLogger(t)
	ma, err := Convert(twoTetRaw())
	require.NoError(t, err)

	lo, hi := ma.Bounds()
	assert.Equal(t, [3]float64{0, 0, 0}, lo)
	assert.Equal(t, [3]float64{1, 1, 1}, hi)

	empty := &MeshArrays{}
	lo, hi = empty.Bounds()
	assert.Equal(t, [3]float64{}, lo)
	assert.Equal(t, [3]float64{}, hi)
	assert.Empty(t, empty.VertexValence())
}
