package tetgen

import (
	"fmt"
	"io"
	"sort"
)

// Face represents a face of an element
type Face struct {
	Vertices [3]int // Sorted vertex indices
	Element  int    // Parent element
	LocalID  int    // Local face ID within element
}

// Mesh is an element record with face connectivity derived from the
// tetrahedra, independent of any adjacency the generator reported.
type Mesh struct {
	Vertices [][3]float64
	EtoV     [][]int
	Regions  []float64 // Region attribute per element, nil if absent
	Valence  []int     // Number of elements sharing each vertex

	// Connectivity (built during initialization)
	EToE [][4]int // Neighbor element across each local face, -1 on the boundary
	EToF [][4]int // Neighbor's local face index across each local face, -1 on the boundary

	Faces   []Face
	FaceMap map[[3]int]int // Sorted vertex triple -> face ID

	NumElements int
	NumVertices int
	NumFaces    int
}

// ToMesh builds a Mesh from the converted arrays and derives its face
// connectivity.
func (ma *MeshArrays) ToMesh() *Mesh {
	m := &Mesh{
		Vertices:    ma.Points,
		EtoV:        ma.Tetrahedra,
		Regions:     ma.RegionValues,
		Valence:     ma.VertexValence(),
		NumElements: len(ma.Tetrahedra),
		NumVertices: len(ma.Points),
	}
	m.BuildConnectivity()
	return m
}

// TetFaces returns the vertices of each local face of a tet, ordered so the
// face normal points outward for a positively oriented tet.
func TetFaces(v []int) [4][3]int {
	return [4][3]int{
		{v[0], v[2], v[1]}, // Face 0
		{v[0], v[1], v[3]}, // Face 1
		{v[1], v[2], v[3]}, // Face 2
		{v[0], v[3], v[2]}, // Face 3
	}
}

func faceKey(f [3]int) [3]int {
	s := f[:]
	sort.Ints(s)
	return f
}

// BuildConnectivity builds element-to-element and face connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][4]int, m.NumElements)
	m.EToF = make([][4]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[[3]int]int)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		m.EToE[elemID] = [4]int{-1, -1, -1, -1}
		m.EToF[elemID] = [4]int{-1, -1, -1, -1}

		for localFaceID, faceVerts := range TetFaces(m.EtoV[elemID]) {
			key := faceKey(faceVerts)
			if faceID, exists := m.FaceMap[key]; exists {
				// Interior face, the first owner is the neighbor
				face := m.Faces[faceID]
				m.EToE[elemID][localFaceID] = face.Element
				m.EToE[face.Element][face.LocalID] = elemID
				m.EToF[elemID][localFaceID] = face.LocalID
				m.EToF[face.Element][face.LocalID] = localFaceID
				continue
			}
			m.FaceMap[key] = len(m.Faces)
			m.Faces = append(m.Faces, Face{
				Vertices: key,
				Element:  elemID,
				LocalID:  localFaceID,
			})
		}
	}
	m.NumFaces = len(m.Faces)
}

// BoundaryFaceCount returns the number of element faces without a neighbor.
func (m *Mesh) BoundaryFaceCount() (n int) {
	for _, nbrs := range m.EToE {
		for _, nbr := range nbrs {
			if nbr < 0 {
				n++
			}
		}
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces)
	fmt.Fprintf(w, "  Boundary faces: %d\n", m.BoundaryFaceCount())
	if len(m.Valence) != 0 {
		lo, hi, mean := valenceStats(m.Valence)
		fmt.Fprintf(w, "  Vertex valence: min %d, max %d, mean %.4g\n", lo, hi, mean)
	}
}

// CheckNeighbors verifies that the generator's neighbor list describes the
// same adjacency as the shared faces of the tetrahedra. Neighbors are compared
// as a set per tet since generators number local faces differently.
func (ma *MeshArrays) CheckNeighbors() error {
	if ma.NeighborList == nil {
		return fmt.Errorf("mesh has no neighbor list")
	}
	m := ma.ToMesh()
	for k := range ma.NeighborList {
		want := sortedNeighbors(m.EToE[k])
		got := sortedNeighbors(ma.NeighborList[k])
		if want != got {
			return fmt.Errorf("tet %d: neighbor list %v does not match shared faces %v",
				k, ma.NeighborList[k], m.EToE[k])
		}
	}
	return nil
}

func sortedNeighbors(n [4]int) [4]int {
	for i := range n {
		if n[i] < 0 {
			n[i] = -1
		}
	}
	s := n[:]
	sort.Ints(s)
	return n
}
