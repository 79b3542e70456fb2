package subset

import (
	"iter"

	"gonum.org/v1/gonum/stat/combin"
)

// Combinations yields every k-element subset of {0, ..., p-1} as an
// ascending index slice, in lexicographic order. Nothing is materialised up
// front and the sequence can be ranged over any number of times. Each
// yielded slice is freshly allocated. Out-of-range p or k yields nothing.
func Combinations(p, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if p < 0 || k < 0 || k > p {
			return
		}
		gen := combin.NewCombinationGenerator(p, k)
		for gen.Next() {
			if !yield(gen.Combination(nil)) {
				return
			}
		}
	}
}

// Count returns C(p, k), the length of Combinations(p, k).
func Count(p, k int) int {
	if p < 0 || k < 0 || k > p {
		return 0
	}
	return combin.Binomial(p, k)
}
