package runtime

import (
	"math/rand"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

// RandSource supplies uniformly distributed numbers in [0, 1) for stochastic productions.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRandSource returns a seeded source. Equal seeds give equal expansions.
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// lazySource seeds itself from the clock on first use, so grammars without alternatives
// never pay for one and a whole expansion shares a single stream.
type lazySource struct {
	src RandSource
}

func (l *lazySource) Float64() float64 {
	if l.src == nil {
		l.src = NewRandSource(time.Now().UnixNano())
	}
	return l.src.Float64()
}

// Expand rewrites the program's axiom the given number of times.
//
// Iteration 0 returns a copy of the axiom. Symbols without a rule are kept as they are,
// parameter included. When a predecessor has several alternatives one is drawn per
// occurrence, weighted, from rnd. A nil rnd draws from one clock-seeded source per call.
//
// There is no ceiling on the output size. Symbol counts grow exponentially and iteration
// counts above domain.PracticalIterations are rarely tractable for plant grammars, so
// callers must bound iterations themselves.
func Expand(p *domain.Program, iterations uint, rnd RandSource) []domain.Symbol {
	if rnd == nil {
		rnd = &lazySource{}
	}
	current := make([]domain.Symbol, len(p.Axiom))
	copy(current, p.Axiom)

	for i := uint(0); i < iterations; i++ {
		next := make([]domain.Symbol, 0, len(current)*2)
		for _, sym := range current {
			prods, ok := p.Rules[sym.Char]
			if !ok {
				next = append(next, sym)
				continue
			}
			next = append(next, choose(prods, rnd).Successor...)
		}
		current = next
	}

	return current
}

func choose(prods []domain.Production, rnd RandSource) domain.Production {
	if len(prods) == 1 {
		return prods[0]
	}

	total := 0.0
	for _, prod := range prods {
		total += prod.Weight
	}

	target := rnd.Float64() * total
	for _, prod := range prods {
		target -= prod.Weight
		if target < 0 {
			return prod
		}
	}
	// Rounding can leave target at exactly zero after the last subtraction.
	return prods[len(prods)-1]
}
