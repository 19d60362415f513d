package memprobgo

import (
	"testing"

	"github.com/gui11aume/memprobgo/kernel"
	"github.com/stretchr/testify/assert"
)

func TestBuildTransferMatrixRow0(t *testing.T) {
	a := assert.New(t)

	r := kernel.NewRing(4, 30, 0.01, 0.05)
	m, err := buildTransferMatrix(r, 3)
	a.NoError(err)

	dim := 2*r.G + 2
	a.Equal(dim, m.dim)

	constant := m.at(0, 1)
	a.NotNil(constant)
	a.Equal(1.0, constant.Coeff[0])

	for j := 0; j < dim; j++ {
		if j == 1 {
			continue
		}

		a.Nil(m.at(0, j), "row 0 must be null everywhere except column 1")
	}
}

func TestBuildTransferMatrixLastRowIsAbsorbing(t *testing.T) {
	a := assert.New(t)

	r := kernel.NewRing(4, 30, 0.01, 0.05)
	m, err := buildTransferMatrix(r, 3)
	a.NoError(err)

	dim := 2*r.G + 2
	for j := 0; j < dim; j++ {
		a.Nil(m.at(dim-1, j))
	}
}

func TestBuildTransferMatrixNEqualsOneNullsCAndYAndTSim(t *testing.T) {
	a := assert.New(t)

	r := kernel.NewRing(4, 30, 0.01, 0.05)
	m, err := buildTransferMatrix(r, 1)
	a.NoError(err)

	dim := 2*r.G + 2

	for j := 1; j <= r.G-1; j++ {
		row := j + 2
		a.Nil(m.at(row, 1), "C column must be null at N=1")
		a.Nil(m.at(row, 2), "C~ column must be null at N=1")
		a.Nil(m.at(row, dim-1), "T~ column must be null at N=1")

		for i := 1; i <= r.G-j-1; i++ {
			a.Nil(m.at(row, r.G+j+i+1), "y column must be null at N=1")
		}
	}
}

func TestMatMulNullRowStaysNull(t *testing.T) {
	a := assert.New(t)

	r := kernel.NewRing(4, 10, 0.01, 0.05)
	m, err := buildTransferMatrix(r, 3)
	a.NoError(err)

	dim := 2*r.G + 2
	dest := newZeroMatrix(dim, r)

	matMul(r, dest, m, m)

	last := dim - 1
	for j := 0; j < dim; j++ {
		cell := dest.at(last, j)
		a.NotNil(cell)

		for _, c := range cell.Coeff {
			a.Equal(0.0, c, "the absorbing row of M has no outgoing transitions, so M^2's last row must stay zero")
		}
	}
}
