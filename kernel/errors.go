package kernel

import "errors"

// ErrDegreeOutOfRange is returned by the polynomial factory when a
// constructor is asked for a degree its preconditions forbid (zero,
// above K, or at/above G where a family requires deg < G). It signals
// an internal invariant violation per spec.md §7: a correctly built
// matrix assembler never triggers it.
var ErrDegreeOutOfRange = errors.New("kernel: requested degree violates factory precondition")
