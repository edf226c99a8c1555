package tetgen

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGmsh22(t *testing.T) {
	quietLogger(t)
	raw := twoTetRaw()
	raw.TriFaceMarkers = []int{3, 3, 3, 4, 4, 4}
	ma, err := Convert(raw)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ma.WriteGmsh22(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Equal(t, "$MeshFormat", lines[0])
	assert.Equal(t, "2.2 0 8", lines[1])
	assert.Equal(t, "$Nodes", lines[3])
	assert.Equal(t, "5", lines[4])
	assert.Equal(t, "5 1 1 1", lines[9])
	assert.Equal(t, "$EndNodes", lines[10])
	assert.Equal(t, "$Elements", lines[11])
	assert.Equal(t, "8", lines[12])
	assert.Equal(t, "1 2 2 3 3 1 3 2", lines[13])
	assert.Equal(t, "7 4 2 1 1 1 2 3 4", lines[19])
	assert.Equal(t, "8 4 2 2 2 2 3 4 5", lines[20])
	assert.Equal(t, "$EndElements", lines[21])
}

func TestSummaryYAML(t *testing.T) {
	quietLogger(t)
	raw := twoTetRaw()
	raw.Point2TetList = nil
	ma, err := Convert(raw)
	require.NoError(t, err)

	s := ma.Summary()
	assert.Equal(t, 5, s.Points)
	assert.Equal(t, 2, s.Tetrahedra)
	assert.Equal(t, 6, s.BoundaryFaces)
	assert.Equal(t, 2, s.Regions)
	assert.True(t, s.HasNeighbors)
	assert.False(t, s.HasPoint2Tet)
	assert.Equal(t, []RegionSize{{"1", 1}, {"2", 1}}, s.RegionSizes)
	assert.Equal(t, 1, s.MinValence)
	assert.Equal(t, 2, s.MaxValence)
	assert.InDelta(t, 1.6, s.MeanValence, 1e-12)

	data, err := s.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tetrahedra: 2")

	var back Summary
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

// Region sizes group values the same way RegionCount does
func TestSummaryRegionSizes_MatchRegionCount(t *testing.T) {
	quietLogger(t)
	raw := twoTetRaw()
	raw.TetrahedronAttributeList = []float64{0, math.Copysign(0, -1)}
	ma, err := Convert(raw)
	require.NoError(t, err)
	s := ma.Summary()
	assert.Equal(t, 1, s.Regions)
	require.Len(t, s.RegionSizes, 1)
	assert.Equal(t, 2, s.RegionSizes[0].Tetrahedra)

	raw.TetrahedronAttributeList = []float64{math.NaN(), math.NaN()}
	ma, err = Convert(raw)
	require.NoError(t, err)
	s = ma.Summary()
	assert.Equal(t, 2, s.Regions)
	require.Len(t, s.RegionSizes, s.Regions)
	for _, rs := range s.RegionSizes {
		assert.Equal(t, "NaN", rs.Region)
		assert.Equal(t, 1, rs.Tetrahedra)
	}
}

func TestWriteGmsh22_Empty(t *testing.T) {
	quietLogger(t)
	raw := NewRawMeshResult()
	raw.PointList = []float64{}
	raw.TetrahedronList = []int{}
	ma, err := Convert(raw)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ma.WriteGmsh22(&buf))
	assert.Contains(t, buf.String(), "$Nodes\n0\n$EndNodes\n$Elements\n0\n$EndElements\n")
}
