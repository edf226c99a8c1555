package tetgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadFiles loads the ASCII files TetGen writes for a mesh named base:
// base.node and base.ele are required, base.face and base.neigh are read when
// present. Indices are shifted to 0-based using the numbering of the first
// node; the -1 "no neighbor" sentinel is kept as is.
func ReadFiles(base string) (*RawMeshResult, error) {
	raw := NewRawMeshResult()

	if err := readFile(base+".node", func(r io.Reader) error { return ReadNode(r, raw) }); err != nil {
		return nil, err
	}
	if err := readFile(base+".ele", func(r io.Reader) error { return ReadEle(r, raw) }); err != nil {
		return nil, err
	}
	err := readFile(base+".face", func(r io.Reader) error { return ReadFace(r, raw) })
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	err = readFile(base+".neigh", func(r io.Reader) error { return ReadNeigh(r, raw) })
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if raw.TriFaceList == nil {
		raw.TriFaceList = []int{}
	}
	return raw, nil
}

func readFile(filename string, parse func(r io.Reader) error) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	if err = parse(file); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// lineReader yields the whitespace separated fields of each non-empty line,
// with '#' comments removed.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (lr *lineReader) next() ([]string, error) {
	for lr.scanner.Scan() {
		lr.line++
		line := lr.scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return fields, nil
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func (lr *lineReader) ints(fields []string, n int) ([]int, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", lr.line, n, len(fields))
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q", lr.line, f)
		}
		vals[i] = v
	}
	return vals, nil
}

func (lr *lineReader) float(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid number %q", lr.line, field)
	}
	return v, nil
}

// ReadNode parses a .node file into the point buffers. The index of the first
// node sets raw.FirstNumber.
func ReadNode(r io.Reader, raw *RawMeshResult) error {
	lr := newLineReader(r)
	fields, err := lr.next()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	header, err := lr.ints(fields, 1)
	if err != nil {
		return err
	}
	// <# of points> <dimension> <# of attributes> <boundary markers>
	header = append(header, 3, 0, 0)
	np, dim, nattr, hasMarkers := header[0], header[1], header[2], header[3] != 0
	if dim != 3 {
		return fmt.Errorf("unsupported dimension: %d", dim)
	}
	if np < 0 {
		return fmt.Errorf("invalid point count %d", np)
	}
	if nattr < 0 {
		return fmt.Errorf("invalid attribute count %d", nattr)
	}

	raw.NumberOfPoints = np
	raw.PointList = make([]float64, 3*np)
	if hasMarkers {
		raw.PointMarkerList = make([]int, np)
	}
	for i := 0; i < np; i++ {
		if fields, err = lr.next(); err != nil {
			return fmt.Errorf("reading point %d: %w", i, err)
		}
		if len(fields) < 4+nattr {
			return fmt.Errorf("line %d: expected %d fields for a point, got %d", lr.line, 4+nattr, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: invalid point index %q", lr.line, fields[0])
		}
		if i == 0 {
			if id != 0 && id != 1 {
				return fmt.Errorf("line %d: first point index must be 0 or 1, got %d", lr.line, id)
			}
			raw.FirstNumber = id
		}
		for j := 0; j < 3; j++ {
			if raw.PointList[3*i+j], err = lr.float(fields[1+j]); err != nil {
				return err
			}
		}
		if hasMarkers {
			if len(fields) < 5+nattr {
				return fmt.Errorf("line %d: missing boundary marker", lr.line)
			}
			if raw.PointMarkerList[i], err = strconv.Atoi(fields[4+nattr]); err != nil {
				return fmt.Errorf("line %d: invalid boundary marker %q", lr.line, fields[4+nattr])
			}
		}
	}
	return nil
}

// ReadEle parses an .ele file into the tetrahedron buffers. The first region
// attribute, if the file carries one, fills TetrahedronAttributeList.
func ReadEle(r io.Reader, raw *RawMeshResult) error {
	lr := newLineReader(r)
	fields, err := lr.next()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	header, err := lr.ints(fields, 1)
	if err != nil {
		return err
	}
	// <# of tetrahedra> <nodes per tet> <# of attributes>
	header = append(header, 4, 0)
	nt, nc, nattr := header[0], header[1], header[2]
	if nt < 0 {
		return fmt.Errorf("invalid tetrahedron count %d", nt)
	}
	if nattr < 0 {
		return fmt.Errorf("invalid attribute count %d", nattr)
	}
	if nc == 10 {
		return fmt.Errorf("second order (10 node) tetrahedra are not supported, mesh without -o2")
	}
	if nc != 4 {
		return fmt.Errorf("unsupported nodes per tetrahedron: %d", nc)
	}

	raw.NumberOfTetrahedra = nt
	raw.NumberOfCorners = nc
	raw.TetrahedronList = make([]int, nc*nt)
	if nattr > 0 {
		raw.TetrahedronAttributeList = make([]float64, nt)
	}
	for k := 0; k < nt; k++ {
		if fields, err = lr.next(); err != nil {
			return fmt.Errorf("reading tetrahedron %d: %w", k, err)
		}
		if len(fields) < 1+nc+nattr {
			return fmt.Errorf("line %d: expected %d fields for a tetrahedron, got %d", lr.line, 1+nc+nattr, len(fields))
		}
		verts, err := lr.ints(fields[1:1+nc], nc)
		if err != nil {
			return err
		}
		for j, v := range verts {
			raw.TetrahedronList[k*nc+j] = v - raw.FirstNumber
		}
		if nattr > 0 {
			if raw.TetrahedronAttributeList[k], err = lr.float(fields[1+nc]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFace parses a .face file into the boundary face buffers. Files written
// with adjacent tets (two trailing columns) also fill Face2TetList.
func ReadFace(r io.Reader, raw *RawMeshResult) error {
	lr := newLineReader(r)
	fields, err := lr.next()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	header, err := lr.ints(fields, 1)
	if err != nil {
		return err
	}
	// <# of faces> <boundary marker>
	header = append(header, 0)
	nf, hasMarkers := header[0], header[1] != 0
	if nf < 0 {
		return fmt.Errorf("invalid face count %d", nf)
	}
	markerCols := 0
	if hasMarkers {
		markerCols = 1
		raw.TriFaceMarkers = make([]int, nf)
	}

	raw.NumberOfTriFaces = nf
	raw.TriFaceList = make([]int, 3*nf)
	for i := 0; i < nf; i++ {
		if fields, err = lr.next(); err != nil {
			return fmt.Errorf("reading face %d: %w", i, err)
		}
		vals, err := lr.ints(fields, 4+markerCols)
		if err != nil {
			return err
		}
		for j := 0; j < 3; j++ {
			raw.TriFaceList[3*i+j] = vals[1+j] - raw.FirstNumber
		}
		if hasMarkers {
			raw.TriFaceMarkers[i] = vals[4]
		}
		if adj := vals[4+markerCols:]; len(adj) >= 2 {
			if i == 0 {
				raw.Face2TetList = make([]int, 2*nf)
			} else if raw.Face2TetList == nil {
				return fmt.Errorf("line %d: adjacent tets present on face %d but not on face 0", lr.line, i)
			}
			raw.Face2TetList[2*i] = shiftIndex(adj[0], raw.FirstNumber)
			raw.Face2TetList[2*i+1] = shiftIndex(adj[1], raw.FirstNumber)
		}
	}
	return nil
}

// ReadNeigh parses a .neigh file into NeighborList.
func ReadNeigh(r io.Reader, raw *RawMeshResult) error {
	lr := newLineReader(r)
	fields, err := lr.next()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	header, err := lr.ints(fields, 1)
	if err != nil {
		return err
	}
	// <# of tetrahedra> <# of neighbors per tet>
	header = append(header, 4)
	nt, nn := header[0], header[1]
	if nn != 4 {
		return fmt.Errorf("unsupported neighbors per tetrahedron: %d", nn)
	}
	if nt != raw.NumberOfTetrahedra {
		return fmt.Errorf("neighbor count %d does not match tetrahedron count %d", nt, raw.NumberOfTetrahedra)
	}

	raw.NeighborList = make([]int, 4*nt)
	for k := 0; k < nt; k++ {
		if fields, err = lr.next(); err != nil {
			return fmt.Errorf("reading neighbors of tetrahedron %d: %w", k, err)
		}
		vals, err := lr.ints(fields, 5)
		if err != nil {
			return err
		}
		for j := 0; j < 4; j++ {
			raw.NeighborList[4*k+j] = shiftIndex(vals[1+j], raw.FirstNumber)
		}
	}
	return nil
}

// Negative values are "none" markers and are not shifted.
func shiftIndex(v, firstNumber int) int {
	if v < 0 {
		return -1
	}
	return v - firstNumber
}
