package tetgen

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// MeshArrays is the dense form of a generator result. It owns all of its
// slices; nothing aliases the RawMeshResult it was built from.
type MeshArrays struct {
	Points        [][3]float64 // [P]
	Tetrahedra    [][]int      // [Ntet][C]
	BoundaryFaces [][3]int     // [Nface]

	// Optional outputs, nil when the source buffer was absent
	PointMarkers []int     // [P]
	RegionValues []float64 // [Ntet]
	NeighborList [][4]int  // [Ntet], -1 marks a face on the boundary
	Point2Tet    []int     // [P]
	Face2Tet     [][2]int  // [Nface]
	FaceMarkers  []int     // [Nface]

	RegionCount int // Number of distinct values in RegionValues
}

// ErrMissingData is wrapped by every *MissingDataError.
var ErrMissingData = errors.New("missing mandatory mesh data")

// MissingDataError reports an absent mandatory buffer, Field is "points" or
// "tetrahedra".
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%s: %s list is nil", ErrMissingData, e.Field)
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

// ErrContract is wrapped by every *ContractError.
var ErrContract = errors.New("mesh generator contract violation")

// ContractError describes output that a conforming generator never produces.
// Convert panics with it, ConvertStrict returns it.
type ContractError struct {
	Field  string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrContract, e.Field, e.Reason)
}

func (e *ContractError) Unwrap() error { return ErrContract }

var logger = log.New(os.Stderr, "tetgen: ", log.LstdFlags)

// SetLogger replaces the logger used for conversion diagnostics.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "tetgen: ", log.LstdFlags)
	}
	logger = l
}

// Convert copies a generator result into MeshArrays. Missing points or
// tetrahedra are reported as *MissingDataError. Anything else that is
// malformed, a corner count other than 4, an out of range corner index or a
// buffer shorter than its count, is a broken generator and panics.
func Convert(raw *RawMeshResult) (*MeshArrays, error) {
	return convert(raw, false)
}

// ConvertStrict behaves like Convert but returns *ContractError instead of
// panicking on malformed generator output.
func ConvertStrict(raw *RawMeshResult) (*MeshArrays, error) {
	return convert(raw, true)
}

func convert(raw *RawMeshResult, strict bool) (ma *MeshArrays, err error) {
	defer func() {
		if err != nil {
			logger.Printf("convert failed: %v", err)
		}
	}()
	violation := func(field, format string, args ...interface{}) error {
		ce := &ContractError{Field: field, Reason: fmt.Sprintf(format, args...)}
		if !strict {
			panic(ce)
		}
		return ce
	}

	if raw == nil || raw.PointList == nil {
		return nil, &MissingDataError{Field: "points"}
	}
	var (
		P    = raw.NumberOfPoints
		K    = raw.NumberOfTetrahedra
		C    = raw.NumberOfCorners
		Nf   = raw.NumberOfTriFaces
		errC error
	)
	if errC = checkLen("points", len(raw.PointList), 3*P); errC != nil {
		return nil, violation("points", "%v", errC)
	}
	ma = &MeshArrays{}
	ma.Points = make([][3]float64, P)
	for i := 0; i < P; i++ {
		ma.Points[i] = [3]float64{
			raw.PointList[3*i+0],
			raw.PointList[3*i+1],
			raw.PointList[3*i+2],
		}
	}

	if raw.TetrahedronList == nil {
		return nil, &MissingDataError{Field: "tetrahedra"}
	}
	if C != 4 {
		return nil, violation("tetrahedra", "corner count is %d, expected 4", C)
	}
	if errC = checkLen("tetrahedra", len(raw.TetrahedronList), C*K); errC != nil {
		return nil, violation("tetrahedra", "%v", errC)
	}
	ma.Tetrahedra = make([][]int, K)
	for k := 0; k < K; k++ {
		row := make([]int, C)
		for j := 0; j < C; j++ {
			vert := raw.TetrahedronList[k*C+j]
			if vert < 0 || vert >= P {
				return nil, violation("tetrahedra",
					"tet %d corner %d references vertex %d, outside [0,%d)", k, j, vert, P)
			}
			row[j] = vert
		}
		ma.Tetrahedra[k] = row
	}

	if errC = checkLen("trifaces", len(raw.TriFaceList), 3*Nf); errC != nil {
		return nil, violation("trifaces", "%v", errC)
	}
	ma.BoundaryFaces = make([][3]int, Nf)
	for i := 0; i < Nf; i++ {
		ma.BoundaryFaces[i] = [3]int{
			raw.TriFaceList[3*i+0],
			raw.TriFaceList[3*i+1],
			raw.TriFaceList[3*i+2],
		}
	}
	if raw.TriFaceMarkers != nil {
		if errC = checkLen("trifacemarkers", len(raw.TriFaceMarkers), Nf); errC != nil {
			return nil, violation("trifacemarkers", "%v", errC)
		}
		ma.FaceMarkers = append(make([]int, 0, Nf), raw.TriFaceMarkers[:Nf]...)
	}

	if raw.PointMarkerList != nil {
		if errC = checkLen("pointmarkers", len(raw.PointMarkerList), P); errC != nil {
			return nil, violation("pointmarkers", "%v", errC)
		}
		ma.PointMarkers = append(make([]int, 0, P), raw.PointMarkerList[:P]...)
	}

	if raw.TetrahedronAttributeList != nil {
		if errC = checkLen("attributes", len(raw.TetrahedronAttributeList), K); errC != nil {
			return nil, violation("attributes", "%v", errC)
		}
		ma.RegionValues = make([]float64, K)
		regions := make(map[float64]struct{})
		for k := 0; k < K; k++ {
			ma.RegionValues[k] = raw.TetrahedronAttributeList[k]
			regions[ma.RegionValues[k]] = struct{}{}
		}
		ma.RegionCount = len(regions)
	}

	if raw.NeighborList != nil {
		if errC = checkLen("neighbors", len(raw.NeighborList), 4*K); errC != nil {
			return nil, violation("neighbors", "%v", errC)
		}
		ma.NeighborList = make([][4]int, K)
		for k := 0; k < K; k++ {
			copy(ma.NeighborList[k][:], raw.NeighborList[4*k:4*k+4])
		}
	}

	if raw.Point2TetList != nil {
		if errC = checkLen("point2tet", len(raw.Point2TetList), P); errC != nil {
			return nil, violation("point2tet", "%v", errC)
		}
		ma.Point2Tet = append(make([]int, 0, P), raw.Point2TetList[:P]...)
	}

	if raw.Face2TetList != nil {
		if errC = checkLen("face2tet", len(raw.Face2TetList), 2*Nf); errC != nil {
			return nil, violation("face2tet", "%v", errC)
		}
		ma.Face2Tet = make([][2]int, Nf)
		for i := 0; i < Nf; i++ {
			ma.Face2Tet[i] = [2]int{raw.Face2TetList[2*i], raw.Face2TetList[2*i+1]}
		}
	}
	return ma, nil
}

func checkLen(name string, have, want int) error {
	if want < 0 {
		return fmt.Errorf("negative %s count %d", name, want)
	}
	if have < want {
		return fmt.Errorf("%s buffer holds %d values, count requires %d", name, have, want)
	}
	return nil
}

// NumElements returns the number of tetrahedra.
func (ma *MeshArrays) NumElements() int { return len(ma.Tetrahedra) }

// NumVertices returns the number of points.
func (ma *MeshArrays) NumVertices() int { return len(ma.Points) }
