package kernel

import "math"

// This file builds the named polynomial families (A, Ã, B, B̃, C, C̃, D,
// D̃, u, v, w, y, T↓, T⇊, T↑, T∼) that the transfer matrix is assembled
// from. Every constructor is a closed form in terms of the scalar
// kernels in kernel.go, evaluated with the exact grouping spec.md §4.1
// requires for floating-point reproducibility. Every constructor that
// loops over coefficients accumulates its power of (1-P) incrementally
// rather than calling math.Pow per term — re-exponentiating would still
// be correct, but it would not reproduce the reference bit-for-bit. The
// single-term monomials u, v, w and y use pow1mP instead.

func (r *Ring) cst(tilde bool, n int) float64 {
	if tilde {
		return OmegaTilde(r.P, r.U, n)
	}

	return Omega(r.P, r.U, n)
}

func (r *Ring) alphaN(n, i int) float64   { return AlphaN(r.U, n, i) }
func (r *Ring) gammaN(n, i int) float64   { return GammaN(r.U, n, i) }
func (r *Ring) deltaN(n, i int) float64   { return DeltaN(r.U, n, i) }
func (r *Ring) betaN(n, j, i int) float64 { return BetaN(r.U, n, j, i) }

// pow1mP returns (1-P)^deg directly (used only where a closed-form power
// is needed without the incremental running-product discipline, i.e. the
// monomial families u, v, w, y whose single coefficient is not part of
// an accumulating loop).
func pow1mP(p float64, deg int) float64 {
	return math.Pow(1.0-p, float64(deg))
}

// bDenom is the "1 - (1-U/3)^N" denominator shared by B, v and w.
func (r *Ring) bDenom(n int) float64 {
	return 1.0 - math.Pow(1.0-r.U/3.0, float64(n))
}

// yDenom is the "αN(j) - αN(j-1) - γN(j) + δN(j-1)" denominator shared
// by C, y and T∼ (v uses the same expression as its numerator).
func (r *Ring) yDenom(n, j int) float64 {
	return r.alphaN(n, j) - r.alphaN(n, j-1) - r.gammaN(n, j) + r.deltaN(n, j-1)
}

// PolyA builds the A (or Ã, when tilde) family at degree d.
func (r *Ring) PolyA(d, n int, tilde bool) (*TruncPoly, error) {
	if d <= 0 || d > r.K {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	cst := r.cst(tilde, n)

	dLow := d
	if dLow > r.G {
		dLow = r.G
	}

	q := 1.0
	for i := 1; i <= dLow; i++ {
		p.Coeff[i] = cst * Xi(r.U, i-1, n) * q
		q *= 1.0 - r.P
	}

	for i := dLow + 1; i <= d; i++ {
		p.Coeff[i] = r.P * (1.0 - r.alphaN(n, i-1)) * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyB builds the B (or B̃) family at degree d.
func (r *Ring) PolyB(d, n int, tilde bool) (*TruncPoly, error) {
	if d <= 0 || d > r.K {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	cst := r.cst(tilde, n)
	denom := r.bDenom(n)

	q := 1.0
	for i := 1; i <= d; i++ {
		p.Coeff[i] = cst * (1.0 - r.alphaN(n, i-1)) / denom * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyC builds the C (or C̃) family at degree d. Defined only for N≥2;
// returns the null-poly (nil, nil) for N=1, matching spec.md §4.3.
func (r *Ring) PolyC(d, n int, tilde bool) (*TruncPoly, error) {
	if n == 1 {
		return nil, nil
	}

	if d <= 0 || d > r.K {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	cst := r.cst(tilde, n)
	j := r.G - d
	denom := r.yDenom(n, j)

	q := 1.0
	for i := 1; i <= d; i++ {
		numer := r.alphaN(n, j) - r.alphaN(n, j-1) - r.betaN(n, j, i+j-1) + r.betaN(n, j-1, i+j-1)
		p.Coeff[i] = cst * numer / denom * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyD builds the D (or D̃) family at degree d.
func (r *Ring) PolyD(d, n int, tilde bool) (*TruncPoly, error) {
	if d <= 0 || d > r.K {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	cst := r.cst(tilde, n)

	q := 1.0
	for i := 1; i <= d; i++ {
		p.Coeff[i] = cst * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyU builds the u monomial at degree deg (1 ≤ deg < G).
func (r *Ring) PolyU(deg, n int) (*TruncPoly, error) {
	if deg <= 0 || deg > r.K || deg >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	coeff := (Xi(r.U, deg-1, n) - Xi(r.U, deg, n)) * pow1mP(r.P, deg)
	p.setMono(deg, coeff)

	return p, nil
}

// PolyV builds the v monomial at degree deg (1 ≤ deg < G).
func (r *Ring) PolyV(deg, n int) (*TruncPoly, error) {
	if deg <= 0 || deg > r.K || deg >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	numer := r.alphaN(n, deg) - r.alphaN(n, deg-1) - r.gammaN(n, deg) + r.deltaN(n, deg-1)
	coeff := numer / r.bDenom(n) * pow1mP(r.P, deg)
	p.setMono(deg, coeff)

	return p, nil
}

// PolyW builds the w monomial at degree deg (1 ≤ deg < G).
func (r *Ring) PolyW(deg, n int) (*TruncPoly, error) {
	if deg <= 0 || deg > r.K || deg >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	numer := r.gammaN(n, deg) - r.deltaN(n, deg-1)
	coeff := numer / r.bDenom(n) * pow1mP(r.P, deg)
	p.setMono(deg, coeff)

	return p, nil
}

// PolyY builds the y monomial at degree i, parameterised by the
// originating state j. Defined only for N≥2; returns the null-poly
// (nil, nil) for N=1.
func (r *Ring) PolyY(j, i, n int) (*TruncPoly, error) {
	if n == 1 {
		return nil, nil
	}

	if i <= 0 || i > r.K || i >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	numer := r.betaN(n, j, j+i) - r.betaN(n, j, j+i-1) - r.betaN(n, j-1, i+j) + r.betaN(n, j-1, j+i-1)
	coeff := numer / r.yDenom(n, j) * pow1mP(r.P, i)
	p.setMono(i, coeff)

	return p, nil
}

// PolyTDown builds T↓(N), defined over [0, High]. Like the reference,
// this assumes K ≥ G (so High == K); unlike the reference, which
// overflows its calloc'd buffer silently when that assumption is
// violated, this returns ErrDegreeOutOfRange instead of writing past
// the end of Coeff (width K+1).
func (r *Ring) PolyTDown(n int) (*TruncPoly, error) {
	if r.High > r.K {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	denom := r.bDenom(n)

	q := 1.0
	for i := 0; i <= r.High; i++ {
		p.Coeff[i] = (1.0 - r.alphaN(n, i)) / denom * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyTDoubleDown builds T⇊(N), defined over [0, G-1].
func (r *Ring) PolyTDoubleDown(n int) (*TruncPoly, error) {
	p := r.Zero()

	q := 1.0
	for i := 0; i <= r.G-1; i++ {
		p.Coeff[i] = Xi(r.U, i, n) * q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyTUp builds T↑(N) at degree deg (deg < G), defined over [0, deg].
func (r *Ring) PolyTUp(deg, n int) (*TruncPoly, error) {
	if deg > r.K || deg >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()

	q := 1.0
	for i := 0; i <= deg; i++ {
		p.Coeff[i] = q
		q *= 1.0 - r.P
	}

	return p, nil
}

// PolyTSim builds T∼(N) at degree deg (deg < G), defined over [0, deg].
// Defined only for N≥2; returns the null-poly (nil, nil) for N=1.
func (r *Ring) PolyTSim(deg, n int) (*TruncPoly, error) {
	if n == 1 {
		return nil, nil
	}

	if deg > r.K || deg >= r.G {
		return nil, ErrDegreeOutOfRange
	}

	p := r.Zero()
	j := r.G - 1 - deg
	denom := r.yDenom(n, j)

	q := 1.0
	for i := 0; i <= deg; i++ {
		numer := r.alphaN(n, j) - r.alphaN(n, j-1) - r.betaN(n, j, i+j) + r.betaN(n, j-1, i+j)
		p.Coeff[i] = numer / denom * q
		q *= 1.0 - r.P
	}

	return p, nil
}
