package kernel

// TruncPoly is a degree-K truncated polynomial: coefficients above K are
// discarded on every product. A nil *TruncPoly is the null-poly, the
// distinguished additive identity / multiplicative annihilator — it is
// never allocated, matching the reference's NULL-pointer encoding.
//
// When hasMono is set, the polynomial is known to be a single term
// monoCoeff*x^monoDeg; Coeff always carries the same information at
// index monoDeg, so the hint is an optimisation, never a second source
// of truth.
type TruncPoly struct {
	Coeff     []float64
	hasMono   bool
	monoDeg   int
	monoCoeff float64
}

// clear zeroes the coefficients in place and drops the monomial hint.
func (p *TruncPoly) clear() {
	for i := range p.Coeff {
		p.Coeff[i] = 0
	}

	p.hasMono = false
	p.monoDeg = 0
	p.monoCoeff = 0
}

// setMono marks p as the monomial coeff*x^deg and writes the
// corresponding coefficient, keeping Coeff authoritative.
func (p *TruncPoly) setMono(deg int, coeff float64) {
	p.hasMono = true
	p.monoDeg = deg
	p.monoCoeff = coeff
	p.Coeff[deg] = coeff
}

// IsMono reports whether p carries a monomial hint.
func (p *TruncPoly) IsMono() bool { return p.hasMono }

// Reset zeroes p in place, exactly like clear, for callers outside the
// package that need to erase a destination cell before accumulating
// into it (e.g. the matrix multiplier's per-cell reset).
func (p *TruncPoly) Reset() { p.clear() }

// Ring is the per-epoch algebra context: every TruncPoly it produces has
// width K+1 and every multiplication truncates at degree K. G and High
// are carried here too because the polynomial factory (factory.go) needs
// them on every call, and they are fixed for the lifetime of the epoch
// exactly like K — see spec.md §3's Parameters invariant.
type Ring struct {
	G    int
	K    int
	High int
	P    float64
	U    float64

	// Scratch is the single destination buffer every matrix-matrix
	// product multiplies into before accumulating; it is owned by the
	// Ring for the lifetime of the epoch, exactly as spec.md §3
	// describes the scratch buffer.
	Scratch *TruncPoly
}

// NewRing opens a new epoch context. Callers are expected to validate P,
// U and G, K before calling NewRing; Ring itself does not re-validate.
func NewRing(g, k int, p, u float64) *Ring {
	high := g
	if k > high {
		high = k
	}

	r := &Ring{G: g, K: k, High: high, P: p, U: u}
	r.Scratch = r.Zero()

	return r
}

// Zero returns a freshly allocated all-zero polynomial of width K+1.
func (r *Ring) Zero() *TruncPoly {
	return &TruncPoly{Coeff: make([]float64, r.K+1)}
}

// AddPolyInto accumulates a into dest in place: dest.Coeff[i] +=
// a.Coeff[i] for i in [0, K]. A nil a (the null-poly) leaves dest
// untouched. Addition destroys any monomial hint dest was carrying,
// since a sum of two monomials is not generally a monomial.
func (r *Ring) AddPolyInto(dest, a *TruncPoly) {
	if a == nil {
		return
	}

	for i := range dest.Coeff {
		dest.Coeff[i] += a.Coeff[i]
	}

	dest.hasMono = false
}

// MulInto computes dest = a*b truncated to degree K, using the monomial
// fast path whenever one or both operands carry a hint, and returns
// dest — or nil when the product is the null-poly (either operand was
// null, or the product of two monomials has degree above K). The nil
// return lets callers feed MulInto's result straight into AddPolyInto,
// mirroring the reference's trunc_pol_mult/trunc_pol_update_add pairing.
func (r *Ring) MulInto(dest, a, b *TruncPoly) *TruncPoly {
	if a == nil || b == nil {
		dest.clear()
		return nil
	}

	switch {
	case a.hasMono && b.hasMono:
		dest.clear()

		deg := a.monoDeg + b.monoDeg
		if deg > r.K {
			return nil
		}

		dest.setMono(deg, a.monoCoeff*b.monoCoeff)

		return dest

	case a.hasMono:
		dest.clear()
		for i := a.monoDeg; i <= r.K; i++ {
			dest.Coeff[i] = a.monoCoeff * b.Coeff[i-a.monoDeg]
		}

		return dest

	case b.hasMono:
		dest.clear()
		for i := b.monoDeg; i <= r.K; i++ {
			dest.Coeff[i] = b.monoCoeff * a.Coeff[i-b.monoDeg]
		}

		return dest

	default:
		for i := 0; i <= r.K; i++ {
			sum := 0.0
			for j := 0; j <= i; j++ {
				sum += a.Coeff[j] * b.Coeff[i-j]
			}

			dest.Coeff[i] = sum
		}

		dest.hasMono = false

		return dest
	}
}
