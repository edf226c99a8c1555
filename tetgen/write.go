package tetgen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

// Gmsh 2.2 element type numbers
const (
	gmshTriangle = 2
	gmshTet      = 4
)

// WriteGmsh22 writes the mesh as a Gmsh 2.2 ASCII file. Tetrahedra carry the
// region value (truncated) as physical tag, boundary triangles carry their
// face marker. Node and element IDs are 1-based as Gmsh requires.
func (ma *MeshArrays) WriteGmsh22(w io.Writer) error {
	var (
		bw     = bufio.NewWriter(w)
		X      = ma.PointMatrix()
		EToV   = ma.TetMatrix()
		_, nc  = EToV.Dims()
		nverts = len(ma.Points)
	)
	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "2.2 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")

	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintln(bw, nverts)
	for i := 0; i < nverts; i++ {
		fmt.Fprintf(bw, "%d %.16g %.16g %.16g\n", i+1, X.At(i, 0), X.At(i, 1), X.At(i, 2))
	}
	fmt.Fprintln(bw, "$EndNodes")

	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintln(bw, len(ma.BoundaryFaces)+len(ma.Tetrahedra))
	id := 1
	for i, f := range ma.BoundaryFaces {
		tag := 0
		if ma.FaceMarkers != nil {
			tag = ma.FaceMarkers[i]
		}
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d\n",
			id, gmshTriangle, tag, tag, f[0]+1, f[1]+1, f[2]+1)
		id++
	}
	for k := range ma.Tetrahedra {
		tag := 0
		if ma.RegionValues != nil {
			tag = int(ma.RegionValues[k])
		}
		fmt.Fprintf(bw, "%d %d 2 %d %d", id, gmshTet, tag, tag)
		for j := 0; j < nc; j++ {
			fmt.Fprintf(bw, " %d", int(EToV.At(k, j))+1)
		}
		fmt.Fprintln(bw)
		id++
	}
	fmt.Fprintln(bw, "$EndElements")
	return bw.Flush()
}

// Summary describes a converted mesh.
type Summary struct {
	Points        int          `json:"points"`
	Tetrahedra    int          `json:"tetrahedra"`
	BoundaryFaces int          `json:"boundaryFaces"`
	Regions       int          `json:"regions"`
	HasMarkers    bool         `json:"hasPointMarkers"`
	HasNeighbors  bool         `json:"hasNeighbors"`
	HasPoint2Tet  bool         `json:"hasPoint2Tet"`
	HasFace2Tet   bool         `json:"hasFace2Tet"`
	BoundsMin     [3]float64   `json:"boundsMin"`
	BoundsMax     [3]float64   `json:"boundsMax"`
	MinValence    int          `json:"minValence"`
	MaxValence    int          `json:"maxValence"`
	MeanValence   float64      `json:"meanValence"`
	RegionSizes   []RegionSize `json:"regionSizes,omitempty"`
}

// RegionSize is the number of tetrahedra carrying one region value.
type RegionSize struct {
	Region     string `json:"region"`
	Tetrahedra int    `json:"tetrahedra"`
}

// Summary collects counts and presence flags for the mesh.
func (ma *MeshArrays) Summary() Summary {
	s := Summary{
		Points:        len(ma.Points),
		Tetrahedra:    len(ma.Tetrahedra),
		BoundaryFaces: len(ma.BoundaryFaces),
		Regions:       ma.RegionCount,
		HasMarkers:    ma.PointMarkers != nil,
		HasNeighbors:  ma.NeighborList != nil,
		HasPoint2Tet:  ma.Point2Tet != nil,
		HasFace2Tet:   ma.Face2Tet != nil,
	}
	s.BoundsMin, s.BoundsMax = ma.Bounds()
	s.MinValence, s.MaxValence, s.MeanValence = ma.ValenceStats()
	if ma.RegionValues != nil {
		// Same keying as RegionCount: -0 joins 0, every NaN stands alone
		index := make(map[float64]int)
		for _, r := range ma.RegionValues {
			i, ok := index[r]
			if !ok {
				i = len(s.RegionSizes)
				index[r] = i
				s.RegionSizes = append(s.RegionSizes, RegionSize{Region: fmt.Sprintf("%g", r)})
			}
			s.RegionSizes[i].Tetrahedra++
		}
	}
	return s
}

// YAML renders the summary as YAML.
func (s Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
