package godg

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// MaxUpper is the sentinel for an unset upper bound.
	MaxUpper = 1000.0

	// UnsetLower detects an unset lower bound: any value at or below it means
	// no pass has written the pair yet.
	UnsetLower = 0.01
)

// BoundsMat is a symmetric pair-distance bounds table: for every atom pair
// (i, j), i != j, a lower and an upper limit on the 3D distance.
//
// Both triangles of one square array are used: the upper triangle holds the
// upper bounds, the lower triangle the lower bounds.
type BoundsMat struct {
	n    int
	data []float64
}

// NewBoundsMat returns an n x n bounds matrix with all entries zero.
// Call Init to install the working defaults before running the passes.
func NewBoundsMat(n int) *BoundsMat {
	return &BoundsMat{
		n:    n,
		data: make([]float64, n*n),
	}
}

func (mm *BoundsMat) Len() int { return mm.n }

// Init fills every off-diagonal entry: lower bounds to defaultMin and upper
// bounds to defaultMax.
func (mm *BoundsMat) Init(defaultMin, defaultMax float64) {
	for i := 1; i < mm.n; i++ {
		for j := 0; j < i; j++ {
			mm.data[j*mm.n+i] = defaultMax
			mm.data[i*mm.n+j] = defaultMin
		}
	}
}

// Upper returns the upper bound for the pair (i, j).
func (mm *BoundsMat) Upper(i, j int) float64 {
	if i > j {
		i, j = j, i
	}
	return mm.data[i*mm.n+j]
}

// Lower returns the lower bound for the pair (i, j).
func (mm *BoundsMat) Lower(i, j int) float64 {
	if i < j {
		i, j = j, i
	}
	return mm.data[i*mm.n+j]
}

// SetUpper writes the upper bound for the pair (i, j).
func (mm *BoundsMat) SetUpper(i, j int, val float64) {
	if i > j {
		i, j = j, i
	}
	mm.data[i*mm.n+j] = val
}

// SetLower writes the lower bound for the pair (i, j).
func (mm *BoundsMat) SetLower(i, j int, val float64) {
	if i < j {
		i, j = j, i
	}
	mm.data[i*mm.n+j] = val
}

// AppendEncodingTo appends a binary encoding of the matrix: the row count
// followed by a uvarint per cell.
func (mm *BoundsMat) AppendEncodingTo(out []byte) []byte {
	var scrap [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(scrap[:], uint64(mm.n))
	out = append(out, scrap[:n]...)
	for _, v := range mm.data {
		n = binary.PutUvarint(scrap[:], math.Float64bits(v))
		out = append(out, scrap[:n]...)
	}
	return out
}

// InitFromEncoding assigns this matrix from an encoding made by
// AppendEncodingTo.
func (mm *BoundsMat) InitFromEncoding(in []byte) error {
	dim, idx := binary.Uvarint(in)
	if idx <= 0 {
		return ErrUnmarshal
	}
	mm.n = int(dim)
	sz := mm.n * mm.n
	if cap(mm.data) < sz {
		mm.data = make([]float64, sz)
	} else {
		mm.data = mm.data[:sz]
	}
	for i := 0; i < sz; i++ {
		bits, n := binary.Uvarint(in[idx:])
		if n <= 0 {
			return ErrUnmarshal
		}
		idx += n
		mm.data[i] = math.Float64frombits(bits)
	}
	return nil
}

// WriteAsCSV prints one "i,j,lower,upper" line per atom pair.
func (mm *BoundsMat) WriteAsCSV(out io.Writer) {
	for i := 0; i < mm.n; i++ {
		for j := i + 1; j < mm.n; j++ {
			fmt.Fprintf(out, "%d,%d,%.4f,%.4f\n", i, j, mm.Lower(i, j), mm.Upper(i, j))
		}
	}
}
