package tetgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two tets sharing face {2,3,4} in TetGen's default 1-based numbering, as
// written by "tetgen -pqAnnf".
var twoTetFiles = map[string]string{
	".node": `# Generated by tetgen
5  3  0  1
   1    0  0  0    1
   2    1  0  0    0
   3    0  1  0    0
   4    0  0  1    0
   5    1  1  1    1
`,
	".ele": `2  4  1
    1     1     2     3     4    7
    2     2     3     4     5    9
# Generated by tetgen
`,
	".face": `6  1
    1     1     3     2    -1    1   -1
    2     1     2     4    -1    1   -1
    3     1     4     3    -1    1   -1
    4     2     3     5    -2    2   -1
    5     3     4     5    -2    2   -1
    6     2     5     4    -2    2   -1
`,
	".neigh": `2  4
    1    -1    -1     2    -1
    2     1    -1    -1    -1
`,
}

func writeTetGenFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "mesh.1")
	for ext, content := range files {
		if err := os.WriteFile(base+ext, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp file: %v", err)
		}
	}
	return base
}

func TestReadFiles_OneBased(t *testing.T) {
	quietLogger(t)
	raw, err := ReadFiles(writeTetGenFiles(t, twoTetFiles))
	require.NoError(t, err)

	assert.Equal(t, 1, raw.FirstNumber)
	assert.Equal(t, 5, raw.NumberOfPoints)
	assert.Equal(t, []int{1, 0, 0, 0, 1}, raw.PointMarkerList)
	assert.Equal(t, []int{0, 1, 2, 3, 1, 2, 3, 4}, raw.TetrahedronList)
	assert.Equal(t, []float64{7, 9}, raw.TetrahedronAttributeList)
	assert.Equal(t, []int{-1, -1, 1, -1, 0, -1, -1, -1}, raw.NeighborList)
	assert.Equal(t, []int{0, 2, 1}, raw.TriFaceList[:3])
	assert.Equal(t, []int{-1, -1, -1, -2, -2, -2}, raw.TriFaceMarkers)
	assert.Equal(t, []int{0, -1, 0, -1, 0, -1, 1, -1, 1, -1, 1, -1}, raw.Face2TetList)
	assert.Nil(t, raw.Point2TetList)

	ma, err := Convert(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, ma.RegionCount)
	assert.NoError(t, ma.CheckNeighbors())
}

func TestReadFiles_ZeroBasedWithoutOptionalFiles(t *testing.T) {
	quietLogger(t)
	base := writeTetGenFiles(t, map[string]string{
		".node": "4 3 0 0\n0 0 0 0\n1 1 0 0\n2 0 1 0\n3 0 0 1\n",
		".ele":  "1 4 0\n0 0 1 2 3\n",
	})
	raw, err := ReadFiles(base)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.FirstNumber)
	assert.Nil(t, raw.PointMarkerList)
	assert.Nil(t, raw.TetrahedronAttributeList)
	assert.Nil(t, raw.NeighborList)
	assert.Nil(t, raw.Face2TetList)
	assert.NotNil(t, raw.TriFaceList)

	ma, err := Convert(raw)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, ma.Tetrahedra)
	assert.Empty(t, ma.BoundaryFaces)
	assert.Equal(t, 0, ma.RegionCount)
}

func TestReadFiles_Errors(t *testing.T) {
	t.Run("MissingNode", func(t *testing.T) {
		_, err := ReadFiles(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
	t.Run("MissingEle", func(t *testing.T) {
		base := writeTetGenFiles(t, map[string]string{".node": twoTetFiles[".node"]})
		_, err := ReadFiles(base)
		assert.Error(t, err)
	})
	t.Run("Truncated", func(t *testing.T) {
		files := map[string]string{
			".node": twoTetFiles[".node"],
			".ele":  "2 4 0\n1 1 2 3 4\n",
		}
		_, err := ReadFiles(writeTetGenFiles(t, files))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mesh.1.ele")
	})
	t.Run("NeighborCountMismatch", func(t *testing.T) {
		files := map[string]string{
			".node":  twoTetFiles[".node"],
			".ele":   twoTetFiles[".ele"],
			".neigh": "1 4\n1 -1 -1 -1 -1\n",
		}
		_, err := ReadFiles(writeTetGenFiles(t, files))
		assert.Error(t, err)
	})
}

func TestReadNode_BadInput(t *testing.T) {
	for name, content := range map[string]string{
		"Dimension":   "1 2 0 0\n1 0 0\n",
		"FirstNumber": "1 3 0 0\n5 0 0 0\n",
		"Coordinate":  "1 3 0 0\n1 0 x 0\n",
		"Marker":      "1 3 0 1\n1 0 0 0\n",
		"Empty":       "# nothing here\n",
		"Attributes":  "1 3 -1 0\n1 0 0 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ReadNode(strings.NewReader(content), NewRawMeshResult()))
		})
	}
}

func TestReadEle_BadInput(t *testing.T) {
	for name, content := range map[string]string{
		"SecondOrder":       "1 10 0\n0 0 1 2 3 4 5 6 7 8 9\n",
		"NodesPerTet":       "1 5 0\n0 0 1 2 3 4\n",
		"NegativeAttribute": "1 4 -3\n0 0 1 2 3\n",
		"NegativeCount":     "-1 4 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			raw := NewRawMeshResult()
			assert.Error(t, ReadEle(strings.NewReader(content), raw))
			assert.Nil(t, raw.TetrahedronList)
		})
	}
}

// A negative attribute count must not shift the marker column out of range
func TestReadNode_NegativeAttributeCount(t *testing.T) {
	raw := NewRawMeshResult()
	var err error
	assert.NotPanics(t, func() {
		err = ReadNode(strings.NewReader("1 3 -9 1\n1 0 0 0 5\n"), raw)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attribute count")
}

func TestReadFiles_SecondOrderRejected(t *testing.T) {
	base := writeTetGenFiles(t, map[string]string{
		".node": "4 3 0 0\n0 0 0 0\n1 1 0 0\n2 0 1 0\n3 0 0 1\n",
		".ele":  "1 10 0\n0 0 1 2 3 0 1 2 3 0 1\n",
	})
	_, err := ReadFiles(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second order")
}
