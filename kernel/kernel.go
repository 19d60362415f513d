// Package kernel implements the symbolic evaluation core: the scalar
// kernels, the truncated polynomial algebra, and the polynomial factory
// that the transfer-matrix engine assembles its matrix entries from.
package kernel

import "math"

// Omega is the per-base error rate P weighted by (1 - U/3)^N, where N
// is the duplicate count.
// cst(N) = P * (1 - U/3)^N.
func Omega(p, u float64, n int) float64 {
	return p * math.Pow(1.0-u/3.0, float64(n))
}

// OmegaTilde is the complement construction used wherever a "tilde"
// polynomial family is requested.
// cst~(N) = P * (1 - (1 - U/3)^N).
func OmegaTilde(p, u float64, n int) float64 {
	return p * (1.0 - math.Pow(1.0-u/3.0, float64(n)))
}

// Xi is the probability that one of m alternative threads survives i
// steps: 1 - (1 - (1-U)^i)^m.
func Xi(u float64, i, m int) float64 {
	return 1.0 - math.Pow(1.0-math.Pow(1.0-u, float64(i)), float64(m))
}

// AlphaN is the single-index calculation intermediate
// (1 - (1-U)^i * U/3)^N.
func AlphaN(u float64, n, i int) float64 {
	return math.Pow(1.0-math.Pow(1.0-u, float64(i))*u/3.0, float64(n))
}

// GammaN is the single-index calculation intermediate (1 - (1-U)^i)^N.
func GammaN(u float64, n, i int) float64 {
	return math.Pow(1.0-math.Pow(1.0-u, float64(i)), float64(n))
}

// DeltaN is the single-index calculation intermediate
// (1 - (1 - U + U^2/3) * (1-U)^i)^N.
func DeltaN(u float64, n, i int) float64 {
	return math.Pow(1.0-(1.0-u+u*u/3.0)*math.Pow(1.0-u, float64(i)), float64(n))
}

// BetaN is the two-index calculation intermediate
// (1 - (1-U)^j*U/3 - (1-U)^i*(1-U/3))^N.
func BetaN(u float64, n, j, i int) float64 {
	return math.Pow(
		1.0-math.Pow(1.0-u, float64(j))*u/3.0-math.Pow(1.0-u, float64(i))*(1.0-u/3.0),
		float64(n),
	)
}
