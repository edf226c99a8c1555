package tetgen

// RawMeshResult holds the flat output buffers of a tetrahedral mesh generator,
// laid out the way tetgenio lays them out. A nil slice means the generator did
// not produce that buffer; a non-nil empty slice is a present, empty buffer.
//
// All index buffers are read as 0-based. Loaders that read 1-based sources
// shift the indices before filling the struct and record the original base in
// FirstNumber.
type RawMeshResult struct {
	FirstNumber int

	PointList       []float64 // [NumberOfPoints*3]
	PointMarkerList []int     // [NumberOfPoints], optional
	Point2TetList   []int     // [NumberOfPoints], optional
	NumberOfPoints  int

	TetrahedronList          []int     // [NumberOfTetrahedra*NumberOfCorners]
	TetrahedronAttributeList []float64 // [NumberOfTetrahedra], optional
	NeighborList             []int     // [NumberOfTetrahedra*4], optional, -1 is no neighbor
	NumberOfTetrahedra       int
	NumberOfCorners          int

	TriFaceList      []int // [NumberOfTriFaces*3]
	TriFaceMarkers   []int // [NumberOfTriFaces], optional
	Face2TetList     []int // [NumberOfTriFaces*2], optional
	NumberOfTriFaces int
}

// NewRawMeshResult returns an empty result with the standard corner count.
func NewRawMeshResult() *RawMeshResult {
	return &RawMeshResult{NumberOfCorners: 4}
}
