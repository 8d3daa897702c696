// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"math/rand"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
)

// KnapsackSolver is the randomized fallback selector used when
// SelectCoinsBnB cannot find an exact-ish match inside its acceptance
// window. It shuffles the pool once, partitions it into groups below
// target+MinChange and a single smallest group at or above it, and, when
// neither partition alone settles the question, runs a bounded
// stochastic search for a near-minimal subset of the lower partition.
//
// KnapsackSolver returns ErrEmptyGroupPool if groups is empty,
// ErrNonPositiveTarget if target is not positive, and
// ErrInsufficientFunds if no combination of groups, including all of
// them together, reaches the target.
func KnapsackSolver(target btcutil.Amount, groups []*Group) (*SelectionResult, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyGroupPool
	}
	if target <= 0 {
		return nil, ErrNonPositiveTarget
	}

	r := newRand()

	// The shuffle is the selector's sole privacy mechanism: it decides
	// which equally-eligible groups end up in which bucket, and is not
	// a security boundary.
	shuffled := make([]*Group, len(groups))
	copy(shuffled, groups)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var (
		applicable   []*Group
		lowerTotal   btcutil.Amount
		lowestLarger *Group
	)

	for _, g := range shuffled {
		switch {
		case g.EffectiveValue == target:
			return knapsackResult(target, []*Group{g}), nil

		case g.EffectiveValue < target+MinChange:
			applicable = append(applicable, g)
			lowerTotal += g.EffectiveValue

		case lowestLarger == nil || g.EffectiveValue < lowestLarger.EffectiveValue:
			lowestLarger = g
		}
	}

	if lowerTotal == target {
		return knapsackResult(target, applicable), nil
	}
	if lowerTotal < target {
		if lowestLarger == nil {
			return nil, ErrInsufficientFunds
		}

		return knapsackResult(target, []*Group{lowestLarger}), nil
	}

	// lowerTotal > target: solve the subset-sum approximately. The
	// reference sorts the applicable groups descending before
	// searching; the initial best is the whole applicable set, matching
	// ApproximateBestSubset's own vfBest/nBest initialization.
	sort.Sort(sortByEffectiveValueDesc(applicable))

	best, bestTotal := approximateBestSubset(
		r, applicable, target, applicable, lowerTotal,
	)

	if bestTotal != target && lowerTotal >= target+MinChange {
		best, bestTotal = approximateBestSubset(
			r, applicable, target+MinChange, best, bestTotal,
		)
	}

	// Prefer the single larger group over the approximated subset when
	// the subset missed its target without enough slack for a change
	// output, or when the larger group alone is no worse.
	if lowestLarger != nil &&
		((bestTotal != target && bestTotal < target+MinChange) ||
			lowestLarger.EffectiveValue <= bestTotal) {

		return knapsackResult(target, []*Group{lowestLarger}), nil
	}

	return knapsackResult(target, best), nil
}

// approximateBestSubset runs up to KnapsackIterations randomized rounds
// over applicable, stopping early on an exact hit, looking for a subset
// whose total is closer to roundTarget than initialBest without falling
// below it. Each round makes two passes over applicable in its existing
// order (the caller shuffles once, before sorting descending, not per
// round): pass 0 tentatively includes each group with independent
// probability ½, pass 1 includes every group the first pass left out, in
// order. As soon as a pass's running total reaches roundTarget, the
// round records the subset if it strictly improves on the current best,
// then unselects the crossover group to keep searching for a tighter
// bound. It is grounded on the reference wallet's ApproximateBestSubset.
func approximateBestSubset(r *rand.Rand, applicable []*Group,
	roundTarget btcutil.Amount, initialBest []*Group,
	initialBestTotal btcutil.Amount) ([]*Group, btcutil.Amount) {

	best := initialBest
	bestTotal := initialBestTotal

	included := make([]bool, len(applicable))

	for iter := 0; iter < KnapsackIterations && bestTotal != roundTarget; iter++ {
		for i := range included {
			included[i] = false
		}

		var total btcutil.Amount
		reachedTarget := false

		for pass := 0; pass < 2 && !reachedTarget; pass++ {
			for i, g := range applicable {
				var include bool
				if pass == 0 {
					include = r.Intn(2) == 1
				} else {
					include = !included[i]
				}

				if !include {
					continue
				}

				total += g.EffectiveValue
				included[i] = true

				if total >= roundTarget {
					reachedTarget = true

					if total < bestTotal {
						bestTotal = total
						best = collectIncluded(applicable, included)
					}

					total -= g.EffectiveValue
					included[i] = false
				}
			}
		}
	}

	return best, bestTotal
}

// collectIncluded returns a new slice of the groups in applicable whose
// corresponding entry in included is true.
func collectIncluded(applicable []*Group, included []bool) []*Group {
	picked := make([]*Group, 0, len(applicable))
	for i, g := range applicable {
		if included[i] {
			picked = append(picked, g)
		}
	}

	return picked
}

// knapsackResult wraps a chosen subset as a KnapsackSolver result.
func knapsackResult(target btcutil.Amount, selected []*Group) *SelectionResult {
	total := nominalTotal(selected)

	log.Debugf("KnapsackSolver: chose %d groups, total=%v, target=%v",
		len(selected), total, target)

	return &SelectionResult{
		Groups:       selected,
		Target:       target,
		UseEffective: true,
		Algorithm:    AlgorithmKnapsack,
		Value:        total,
	}
}
