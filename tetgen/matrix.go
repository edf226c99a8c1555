package tetgen

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PointMatrix returns the vertex coordinates as a P x 3 matrix.
func (ma *MeshArrays) PointMatrix() *mat.Dense {
	P := len(ma.Points)
	if P == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, 3*P)
	for i, p := range ma.Points {
		copy(data[3*i:], p[:])
	}
	return mat.NewDense(P, 3, data)
}

// TetMatrix returns the element to vertex connectivity as a K x C matrix of
// vertex indices, the EToV layout used by the solvers.
func (ma *MeshArrays) TetMatrix() *mat.Dense {
	K := len(ma.Tetrahedra)
	if K == 0 {
		return &mat.Dense{}
	}
	C := len(ma.Tetrahedra[0])
	EToV := mat.NewDense(K, C, nil)
	for k, row := range ma.Tetrahedra {
		for j, v := range row {
			EToV.Set(k, j, float64(v))
		}
	}
	return EToV
}

// VertexTetIncidence returns the P x K matrix with a 1 wherever vertex i is a
// corner of tet k. Row sums are the vertex valences.
func (ma *MeshArrays) VertexTetIncidence() *sparse.CSR {
	var (
		P = len(ma.Points)
		K = len(ma.Tetrahedra)
	)
	dok := sparse.NewDOK(P, K)
	for k, row := range ma.Tetrahedra {
		for _, v := range row {
			dok.Set(v, k, 1)
		}
	}
	return dok.ToCSR()
}

// VertexValence returns the number of tets sharing each vertex.
func (ma *MeshArrays) VertexValence() []int {
	var (
		P   = len(ma.Points)
		val = make([]int, P)
	)
	if P == 0 || len(ma.Tetrahedra) == 0 {
		return val
	}
	raw := ma.VertexTetIncidence().RawMatrix()
	for i := 0; i < P; i++ {
		val[i] = raw.Indptr[i+1] - raw.Indptr[i]
	}
	return val
}

// ValenceStats returns the smallest, largest and mean vertex valence.
func (ma *MeshArrays) ValenceStats() (lo, hi int, mean float64) {
	return valenceStats(ma.VertexValence())
}

func valenceStats(val []int) (lo, hi int, mean float64) {
	if len(val) == 0 {
		return
	}
	fv := make([]float64, len(val))
	for i, v := range val {
		fv[i] = float64(v)
	}
	lo, hi = int(floats.Min(fv)), int(floats.Max(fv))
	mean = floats.Sum(fv) / float64(len(fv))
	return
}

// Bounds returns the axis aligned bounding box of the points. An empty mesh
// returns zero vectors.
func (ma *MeshArrays) Bounds() (lo, hi [3]float64) {
	if len(ma.Points) == 0 {
		return
	}
	coord := make([]float64, len(ma.Points))
	for d := 0; d < 3; d++ {
		for i, p := range ma.Points {
			coord[i] = p[d]
		}
		lo[d] = floats.Min(coord)
		hi[d] = floats.Max(coord)
	}
	return
}
