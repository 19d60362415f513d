// Package memprobgo computes, for a read of length k sequenced against
// one of N near-identical duplicate loci, the probability that the read
// carries no Maximal Exact Match seed of length ≥ G against the correct
// locus. See SPEC_FULL.md for the full symbolic-evaluation design.
package memprobgo

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/gui11aume/memprobgo/kernel"
)

// MaxDuplicates bounds the duplicate count a query may request; N must
// satisfy 1 ≤ N ≤ MaxDuplicates-1, matching the reference's MAXN=1024.
const MaxDuplicates = 1024

// seriesBackstop is the reference's historical "10 must be replaced by
// a smart number" loop bound (FIXME in the original C core). This repo
// takes the Design Notes' recommended adaptive termination — stop as
// soon as a freshly accumulated odd and even matrix power both
// contribute nothing at degrees ≤ K — and keeps this as a hard backstop
// so the loop is still
// provably bounded even if the adaptive check were ever wrong.
const seriesBackstop = 10

// Error codes returned by LastErrorCode, stable across calls so callers
// can branch on them without string matching.
const (
	ErrCodeNone = iota
	ErrCodeInvalidP
	ErrCodeInvalidU
	ErrCodeNOutOfRange
	ErrCodeKOutOfRange
	ErrCodeInternal
)

// Domain error sentinels returned by Configure.
var (
	ErrInvalidP = errors.New("memprobgo: P must be in the open interval (0, 1)")
	ErrInvalidU = errors.New("memprobgo: U must be in the open interval (0, 1)")
)

// Engine is the session-state handle: the epoch parameters, the
// memoisation table and the scratch buffer, all owned by one value so
// that concurrent use of independent Engines is safe by construction
// (spec.md §5, Design Notes' "engine handle").
type Engine struct {
	mu sync.Mutex

	ring       *kernel.Ring
	configured bool

	memo    []*kernel.TruncPoly
	lastErr int
}

// NewEngine returns an unconfigured handle; Configure must be called
// before Compute will return anything but NaN.
func NewEngine() *Engine {
	return &Engine{}
}

// Configure (re)opens an epoch: it validates P and U, (re)allocates the
// scratch buffer, and clears every memoised result. On a validation
// failure the previously active configuration, if any, is left
// untouched, matching spec.md §7 ("no state mutation" on a domain
// error).
func (e *Engine) Configure(g, k int, p, u float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p <= 0.0 || p >= 1.0 {
		e.lastErr = ErrCodeInvalidP
		e.warn(ErrInvalidP)

		return ErrInvalidP
	}

	if u <= 0.0 || u >= 1.0 {
		e.lastErr = ErrCodeInvalidU
		e.warn(ErrInvalidU)

		return ErrInvalidU
	}

	e.ring = kernel.NewRing(g, k, p, u)
	e.memo = make([]*kernel.TruncPoly, MaxDuplicates)
	e.configured = true
	e.lastErr = ErrCodeNone

	return nil
}

// Clean releases all cached state: the scratch buffer, every memoised
// w(N), and the error token, leaving the engine unconfigured again.
func (e *Engine) Clean() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ring = nil
	e.memo = nil
	e.configured = false
	e.lastErr = ErrCodeNone
}

// LastErrorCode returns the integer diagnostic token of the most recent
// failure. It is not reset by a successful Compute — only Configure and
// Clean clear it — mirroring the reference's get_mem_prob_error_code.
func (e *Engine) LastErrorCode() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.lastErr
}

// Compute returns the probability that a length-k read carries no MEM
// seed of length ≥ G against the correct one of N duplicates, or NaN on
// any domain error, internal invariant violation, or allocation
// failure (spec.md §4.6, §6, §7).
func (e *Engine) Compute(n, k int) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.configured {
		e.lastErr = ErrCodeInternal
		e.warn(errors.New("memprobgo: Compute called before Configure"))

		return math.NaN()
	}

	if n < 1 || n > MaxDuplicates-1 {
		e.lastErr = ErrCodeNOutOfRange
		e.warn(fmt.Errorf("memprobgo: N=%d exceeds MaxDuplicates-1=%d", n, MaxDuplicates-1))

		return math.NaN()
	}

	if k < 0 || k > e.ring.K {
		e.lastErr = ErrCodeKOutOfRange
		e.warn(fmt.Errorf("memprobgo: k=%d exceeds configured K=%d", k, e.ring.K))

		return math.NaN()
	}

	w := e.memo[n]
	if w == nil {
		var err error

		w, err = computeGeneratingFunction(e.ring, n)
		if err != nil {
			e.lastErr = ErrCodeInternal
			e.warn(err)

			return math.NaN()
		}

		e.memo[n] = w
	}

	// Rounding can carry a coefficient a few ulps outside [0, 1] (e.g.
	// 1.0000000000000002 for some k < G); the result is clamped.
	return math.Max(0.0, math.Min(1.0, w.Coeff[k]))
}

// warn writes an advisory diagnostic line, mirroring the reference's
// warning()-to-stderr behaviour. It is advisory only: programmatic
// callers use LastErrorCode, never this line's text.
func (e *Engine) warn(err error) {
	fmt.Fprintf(os.Stderr, "[memprobgo] %v\n", err)
}

// computeGeneratingFunction assembles M(N) and sums the truncated power
// series w(N) = Σ_{p=2}^{pMax} (M^p)[0, 2G+1], the mass absorbed into
// the failure state after p steps starting from state 0, memoising
// nothing itself — the caller owns the memoisation table.
func computeGeneratingFunction(r *kernel.Ring, n int) (*kernel.TruncPoly, error) {
	dim := 2*r.G + 2

	m, err := buildTransferMatrix(r, n)
	if err != nil {
		return nil, err
	}

	w := r.Zero()

	powA := newZeroMatrix(dim, r)
	powB := newZeroMatrix(dim, r)

	// p = 2.
	matMul(r, powA, m, m)
	r.AddPolyInto(w, powA.at(0, dim-1))

	for i := 0; i < seriesBackstop; i++ {
		// p = 2i+3.
		matMul(r, powB, powA, m)

		term := powB.at(0, dim-1)
		r.AddPolyInto(w, term)

		oddWasZero := isZeroTerm(term)

		// p = 2i+4.
		matMul(r, powA, powB, m)

		term = powA.at(0, dim-1)
		r.AddPolyInto(w, term)

		if oddWasZero && isZeroTerm(term) {
			break
		}
	}

	return w, nil
}

func isZeroTerm(p *kernel.TruncPoly) bool {
	if p == nil {
		return true
	}

	for _, c := range p.Coeff {
		if c != 0 {
			return false
		}
	}

	return true
}

// defaultEngine backs the package-level legacy API (Design Notes'
// "global" wrapper over a single lazily-created handle).
var defaultEngine = NewEngine()

// Configure configures the package-level default engine.
func Configure(g, k int, p, u float64) error { return defaultEngine.Configure(g, k, p, u) }

// Compute queries the package-level default engine.
func Compute(n, k int) float64 { return defaultEngine.Compute(n, k) }

// Clean releases the package-level default engine's cached state.
func Clean() { defaultEngine.Clean() }

// LastErrorCode returns the package-level default engine's last error
// token.
func LastErrorCode() int { return defaultEngine.LastErrorCode() }
