// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "sort"

// ArrangementStrategy orders a pool of groups before it is handed to a
// selector, the same role CoinSelectionStrategy plays in
// wallet/tx_creator.go. SelectCoinsBnB and KnapsackSolver both re-sort or
// reshuffle their input internally, so an ArrangementStrategy only
// matters for callers that want a deterministic or privacy-preserving
// pre-selection order independent of either selector — for instance, a
// caller satisfying a request out of a single largest UTXO without
// invoking the search at all.
type ArrangementStrategy interface {
	// Arrange returns groups reordered according to the strategy.
	Arrange(groups []*Group) []*Group
}

var (
	// ArrangeLargestFirst always orders the largest available group
	// first.
	ArrangeLargestFirst ArrangementStrategy = largestFirstStrategy{}

	// ArrangeRandomly shuffles the group pool, preventing the same
	// small UTXOs from being skipped indefinitely.
	ArrangeRandomly ArrangementStrategy = randomStrategy{}
)

// sortByEffectiveValueGroups is a sort.Interface over groups by ascending
// effective value, reversed by largestFirstStrategy to get descending
// order the same way wallet/tx_creator.go reverses sortByAmount.
type sortByEffectiveValueGroups []*Group

func (s sortByEffectiveValueGroups) Len() int { return len(s) }
func (s sortByEffectiveValueGroups) Less(i, j int) bool {
	return s[i].EffectiveValue < s[j].EffectiveValue
}
func (s sortByEffectiveValueGroups) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

type largestFirstStrategy struct{}

func (largestFirstStrategy) Arrange(groups []*Group) []*Group {
	ordered := make([]*Group, len(groups))
	copy(ordered, groups)

	sort.Sort(sort.Reverse(sortByEffectiveValueGroups(ordered)))

	return ordered
}

type randomStrategy struct{}

func (randomStrategy) Arrange(groups []*Group) []*Group {
	ordered := make([]*Group, len(groups))
	copy(ordered, groups)

	r := newRand()
	r.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})

	return ordered
}
