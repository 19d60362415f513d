package memprobgo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Scenario vectors from spec.md §8.

func TestScenarioReadShorterThanGIsCertainlySeedFree(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(17, 50, 0.01, 0.05))

	got := e.Compute(1, 16)
	a.InDelta(1.0, got, 1e-9)
}

func TestScenarioLongerReadIsStrictlyBetweenZeroAndOne(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(17, 50, 0.01, 0.05))

	got := e.Compute(1, 50)
	a.Greater(got, 0.0)
	a.Less(got, 1.0)
}

func TestScenarioMoreDuplicatesNeverDecreaseProbability(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(17, 50, 0.01, 0.05))

	p1 := e.Compute(1, 50)
	p2 := e.Compute(2, 50)
	a.GreaterOrEqual(p2, p1)
}

func TestScenarioMonotonicityInK(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(17, 100, 0.01, 0.05))

	p99 := e.Compute(5, 99)
	p100 := e.Compute(5, 100)
	a.False(p100 > p99, "compute must be non-increasing in k")
}

func TestScenarioNOutOfRangeReturnsNaN(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(17, 50, 0.01, 0.05))

	got := e.Compute(1025, 10)
	a.True(math.IsNaN(got))
	a.Equal(ErrCodeNOutOfRange, e.LastErrorCode())
}

func TestScenarioInvalidConfigurationLeavesPriorActive(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(10, 40, 0.02, 0.1))

	err := e.Configure(10, 40, 0.0, 0.1)
	a.ErrorIs(err, ErrInvalidP)

	// Prior configuration must still answer queries.
	got := e.Compute(1, 5)
	a.False(math.IsNaN(got))
}

func TestComputeBeforeConfigureReturnsNaN(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	got := e.Compute(1, 0)
	a.True(math.IsNaN(got))
}

func TestComputeKOutOfRangeReturnsNaN(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(5, 20, 0.01, 0.05))

	got := e.Compute(2, 21)
	a.True(math.IsNaN(got))
	a.Equal(ErrCodeKOutOfRange, e.LastErrorCode())
}

func TestMemoisationIsIdempotent(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(5, 20, 0.01, 0.05))

	first := e.Compute(3, 12)
	second := e.Compute(3, 12)
	a.Equal(first, second)
}

func TestConfigurationInvalidatesMemoisedValues(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(5, 20, 0.01, 0.05))

	before := e.Compute(3, 12)

	a.NoError(e.Configure(5, 20, 0.05, 0.2))
	after := e.Compute(3, 12)

	a.NotEqual(before, after)
}

func TestCleanResetsEverything(t *testing.T) {
	a := assert.New(t)

	e := NewEngine()
	a.NoError(e.Configure(5, 20, 0.01, 0.05))
	e.Compute(3, 12)

	e.Clean()

	a.Equal(ErrCodeNone, e.LastErrorCode())
	a.True(math.IsNaN(e.Compute(3, 12)))
}

func TestPackageLevelDefaultEngine(t *testing.T) {
	a := assert.New(t)

	a.NoError(Configure(5, 20, 0.01, 0.05))
	defer Clean()

	got := Compute(3, 10)
	a.False(math.IsNaN(got))
}

// TestRangeAndMonotonicityProperty sweeps a handful of (G,K,P,U,N)
// configurations and checks the two invariants that must hold for every
// successful query, using gonum's tolerance-aware comparison so the
// check survives the IEEE-754 noise spec.md §1 accepts.
func TestRangeAndMonotonicityProperty(t *testing.T) {
	a := assert.New(t)

	configs := []struct {
		g, k int
		p, u float64
	}{
		{6, 40, 0.005, 0.03},
		{10, 60, 0.02, 0.08},
		{17, 50, 0.01, 0.05},
	}

	for _, c := range configs {
		e := NewEngine()
		a.NoError(e.Configure(c.g, c.k, c.p, c.u))

		for n := 1; n <= 6; n++ {
			prev := math.Inf(1)

			for k := 0; k <= c.k; k++ {
				got := e.Compute(n, k)
				a.False(math.IsNaN(got))
				a.GreaterOrEqual(got, 0.0)
				a.LessOrEqual(got, 1.0)

				if k < c.g {
					a.True(floats.EqualWithinAbsOrRel(1.0, got, 1e-9, 1e-9),
						"k < G must leave no room for a MEM seed")
				}

				a.True(got <= prev+1e-9, "compute must be non-increasing in k")
				prev = got
			}
		}
	}
}
