package ntk

import (
	"cmp"
	"math"
	"slices"
)

const (
	// DefaultBudgetBytes bounds the dense per-sample Jacobians of one chunk.
	DefaultBudgetBytes = 2e9
	// ElementBytes is the assumed size of one Jacobian entry (float64).
	ElementBytes = 8
)

// Param is a parameter tensor as seen by the chunker: only its element count matters.
type Param interface {
	Numel() int
}

// BudgetElements returns the largest chunk element count whose train and test
// Jacobians fit in budgetBytes: floor(budgetBytes / (8 * (nTrain + nTest))).
//
// With no samples at all the budget is unbounded.
func BudgetElements(budgetBytes float64, nTrain, nTest int) float64 {
	n := nTrain + nTest
	if n <= 0 {
		return math.Inf(1)
	}
	return math.Floor(budgetBytes / float64(ElementBytes*n))
}

// ChunkParameters partitions params into groups whose total element count
// stays within BudgetElements, packing the largest parameters first.
//
// Parameters are stably sorted by element count, descending, and accumulated
// greedily. When adding a parameter pushes the running group over budget:
//   - if the group has two or more members, the group is closed without the
//     new parameter, which starts the next group;
//   - otherwise the single oversized parameter is closed as its own group and
//     the next group starts empty.
//
// Whatever remains forms the final group. The result is disjoint, covers
// params and never fails, even for a parameter larger than the budget.
func ChunkParameters[P Param](params []P, nTrain, nTest int, budgetBytes float64) [][]P {
	budget := BudgetElements(budgetBytes, nTrain, nTest)

	sorted := slices.Clone(params)
	slices.SortStableFunc(sorted, func(a, b P) int {
		return cmp.Compare(b.Numel(), a.Numel())
	})

	var (
		groups  [][]P
		current []P
		total   int
	)
	for _, p := range sorted {
		current = append(current, p)
		total += p.Numel()
		if float64(total) <= budget {
			continue
		}
		if len(current) > 1 {
			groups = append(groups, slices.Clip(current[:len(current)-1]))
			current = []P{p}
			total = p.Numel()
		} else {
			groups = append(groups, current)
			current = nil
			total = 0
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Numel returns the combined element count of params.
func Numel[P Param](params []P) int {
	n := 0
	for _, p := range params {
		n += p.Numel()
	}
	return n
}
