package memprobgo

import "github.com/gui11aume/memprobgo/kernel"

// Matrix is a square, row-major grid of dim×dim TruncPoly terms. A nil
// term is the null-poly (the zero entry), which short-circuits
// multiplication — see kernel.TruncPoly.
type Matrix struct {
	dim  int
	term []*kernel.TruncPoly
}

// newNullMatrix allocates a dim×dim matrix with every term left nil
// (null-poly), mirroring the reference's calloc'd all-NULL matrix.
func newNullMatrix(dim int) *Matrix {
	return &Matrix{dim: dim, term: make([]*kernel.TruncPoly, dim*dim)}
}

// newZeroMatrix allocates a dim×dim matrix with every term set to the
// all-zero (but non-nil) polynomial; used for the accumulator matrices
// the power-series summation multiplies into.
func newZeroMatrix(dim int, r *kernel.Ring) *Matrix {
	m := newNullMatrix(dim)
	for i := range m.term {
		m.term[i] = r.Zero()
	}

	return m
}

func (m *Matrix) at(i, j int) *kernel.TruncPoly {
	return m.term[i*m.dim+j]
}

func (m *Matrix) set(i, j int, p *kernel.TruncPoly) {
	m.term[i*m.dim+j] = p
}

// buildTransferMatrix assembles M(N), the (2G+2)-dimensional transfer
// matrix of spec.md §4.4, from the polynomial factory. When N=1 every
// C, y and T∼ entry the factory returns is the null-poly, so the
// corresponding cells are left nil automatically — no special-casing
// is needed here beyond what the factory already does.
func buildTransferMatrix(r *kernel.Ring, n int) (*Matrix, error) {
	dim := 2*r.G + 2
	m := newNullMatrix(dim)

	one := r.Zero()
	one.Coeff[0] = 1.0
	m.set(0, 1, one)

	if err := setRow1(m, r, n, dim); err != nil {
		return nil, err
	}

	if err := setRow2(m, r, n, dim); err != nil {
		return nil, err
	}

	if err := setUpperMiddleRows(m, r, n, dim); err != nil {
		return nil, err
	}

	if err := setLowerMiddleRows(m, r, n, dim); err != nil {
		return nil, err
	}

	// Row dim-1 (the absorbing state) is entirely null-poly.

	return m, nil
}

func setRow1(m *Matrix, r *kernel.Ring, n, dim int) error {
	a, err := r.PolyA(r.G, n, false)
	if err != nil {
		return err
	}

	m.set(1, 1, a)

	aTilde, err := r.PolyA(r.High, n, true)
	if err != nil {
		return err
	}

	m.set(1, 2, aTilde)

	for j := 1; j <= r.G-1; j++ {
		u, err := r.PolyU(j, n)
		if err != nil {
			return err
		}

		m.set(1, r.G+1+j, u)
	}

	tdd, err := r.PolyTDoubleDown(n)
	if err != nil {
		return err
	}

	m.set(1, dim-1, tdd)

	return nil
}

func setRow2(m *Matrix, r *kernel.Ring, n, dim int) error {
	b, err := r.PolyB(r.High, n, false)
	if err != nil {
		return err
	}

	m.set(2, 1, b)

	bTilde, err := r.PolyB(r.High, n, true)
	if err != nil {
		return err
	}

	m.set(2, 2, bTilde)

	for j := 1; j <= r.G-1; j++ {
		v, err := r.PolyV(j, n)
		if err != nil {
			return err
		}

		m.set(2, 2+j, v)
	}

	for j := 1; j <= r.G-1; j++ {
		w, err := r.PolyW(j, n)
		if err != nil {
			return err
		}

		m.set(2, r.G+1+j, w)
	}

	td, err := r.PolyTDown(n)
	if err != nil {
		return err
	}

	m.set(2, dim-1, td)

	return nil
}

// setUpperMiddleRows fills rows 3..G+1 (j = 1..G-1, row r = j+2).
func setUpperMiddleRows(m *Matrix, r *kernel.Ring, n, dim int) error {
	for j := 1; j <= r.G-1; j++ {
		row := j + 2

		c, err := r.PolyC(r.G-j, n, false)
		if err != nil {
			return err
		}

		m.set(row, 1, c)

		cTilde, err := r.PolyC(r.G-j, n, true)
		if err != nil {
			return err
		}

		m.set(row, 2, cTilde)

		for i := 1; i <= r.G-j-1; i++ {
			y, err := r.PolyY(j, i, n)
			if err != nil {
				return err
			}

			m.set(row, r.G+j+i+1, y)
		}

		tsim, err := r.PolyTSim(r.G-j-1, n)
		if err != nil {
			return err
		}

		m.set(row, dim-1, tsim)
	}

	return nil
}

// setLowerMiddleRows fills rows G+2..2G (j = 1..G-1, row r = j+G+1).
func setLowerMiddleRows(m *Matrix, r *kernel.Ring, n, dim int) error {
	for j := 1; j <= r.G-1; j++ {
		row := j + r.G + 1

		d, err := r.PolyD(r.G-j, n, false)
		if err != nil {
			return err
		}

		m.set(row, 1, d)

		dTilde, err := r.PolyD(r.G-j, n, true)
		if err != nil {
			return err
		}

		m.set(row, 2, dTilde)

		tup, err := r.PolyTUp(r.G-j-1, n)
		if err != nil {
			return err
		}

		m.set(row, dim-1, tup)
	}

	return nil
}

// matMul computes dest[i,j] = Σ_m a[i,m]*b[m,j], reusing r.Scratch as
// the destination of every pairwise product, exactly as spec.md §4.5
// prescribes. dest is cleared one cell at a time right before its
// accumulation begins.
func matMul(r *kernel.Ring, dest, a, b *Matrix) {
	dim := dest.dim

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			cell := dest.at(i, j)
			cell.Reset()

			for k := 0; k < dim; k++ {
				r.AddPolyInto(cell, r.MulInto(r.Scratch, a.at(i, k), b.at(k, j)))
			}
		}
	}
}
