// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"sort"

	"github.com/btcsuite/btcd/btcutil"
)

// sortByEffectiveValueDesc sorts groups by descending effective value, the
// order the branch-and-bound search walks the pool in.
type sortByEffectiveValueDesc []*Group

func (s sortByEffectiveValueDesc) Len() int { return len(s) }
func (s sortByEffectiveValueDesc) Less(i, j int) bool {
	return s[i].EffectiveValue > s[j].EffectiveValue
}
func (s sortByEffectiveValueDesc) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// SelectCoinsBnB attempts to find a subset of groups whose effective value
// sum lands inside the acceptance window
// [target+notInputFees, target+notInputFees+costOfChange], preferring the selection
// with the lowest waste. It explores the search space depth-first,
// branching on whether each group (visited in descending effective-value
// order) is included or excluded, bounding the search with a lookahead on
// the remaining available value and an overall try budget.
//
// A successful selection never needs a change output: its total falls
// inside the window by construction. SelectCoinsBnB returns
// ErrEmptyGroupPool if groups is empty, ErrNonPositiveTarget if target is
// not positive, and ErrNoAcceptableSelection if the search exhausts its
// try budget without finding a selection in the window.
func SelectCoinsBnB(groups []*Group, target, costOfChange,
	notInputFees btcutil.Amount) (*SelectionResult, error) {

	if len(groups) == 0 {
		return nil, ErrEmptyGroupPool
	}
	if target <= 0 {
		return nil, ErrNonPositiveTarget
	}

	pool := make([]*Group, len(groups))
	copy(pool, groups)
	sort.Sort(sortByEffectiveValueDesc(pool))

	actualTarget := target + notInputFees

	var totalAvailable btcutil.Amount
	for _, g := range pool {
		totalAvailable += g.EffectiveValue
	}
	if totalAvailable < actualTarget {
		return nil, ErrInsufficientFunds
	}

	b := &bnbSearch{
		pool:          pool,
		actualTarget:  actualTarget,
		window:        actualTarget + costOfChange,
		costOfChange:  costOfChange,
		triesLeft:     TotalTries,
		bestSelection: nil,
		bestWaste:     MaxMoney,
	}

	b.search(0, 0, 0, totalAvailable, nil, false)

	if b.bestSelection == nil {
		return nil, ErrNoAcceptableSelection
	}

	log.Debugf("SelectCoinsBnB: chose %d groups, waste=%v, total=%v",
		len(b.bestSelection), b.bestWaste, nominalTotal(b.bestSelection))

	return &SelectionResult{
		Groups:       b.bestSelection,
		Target:       target,
		UseEffective: true,
		Algorithm:    AlgorithmBnB,
		Waste:        b.bestWaste,
		Value:        nominalTotal(b.bestSelection),
	}, nil
}

// bnbSearch carries the mutable state of a single SelectCoinsBnB
// invocation through its recursive depth-first exploration.
type bnbSearch struct {
	pool []*Group

	// actualTarget is the target plus the fee owed by everything other
	// than the inputs.
	actualTarget btcutil.Amount

	// window is the upper bound of the acceptance range: actualTarget
	// plus the caller's cost of change.
	window btcutil.Amount

	costOfChange btcutil.Amount

	triesLeft int

	bestSelection []*Group
	bestWaste     btcutil.Amount
}

// search walks the pool depth-first starting at index i, with
// currentValue the effective value sum of the groups included so far
// (given by selected), currentWaste their accumulated waste
// contribution excluding the excess term, and availableValue the
// effective value sum of pool[i:], not yet decided. prevOmitted reports
// whether, on this path, the group at i-1 was excluded rather than
// included — the equivalence skip needs to know this, not merely that
// it shares an effective value with group i.
//
// At each call exactly one of prune, record, or descend fires, mirroring
// the reference algorithm's curr_available_value bookkeeping and
// backtracking loop in recursive form: inclusion is explored before
// omission, and the bestWaste field carries pruning and tie-break state
// across the whole search.
func (b *bnbSearch) search(i int, currentValue, currentWaste btcutil.Amount,
	availableValue btcutil.Amount, selected []*Group, prevOmitted bool) {

	if b.triesLeft <= 0 {
		return
	}
	b.triesLeft--

	// The waste prune is only sound when the first (largest) group's
	// fee premium is positive, since that's what guarantees waste can
	// only grow deeper in the tree.
	firstGroup := b.pool[0]
	feePremium := firstGroup.Fee - firstGroup.LongTermFee
	feePremiumPositive := feePremium > 0

	switch {
	case currentValue+availableValue < b.actualTarget:
		// Unreachable: even every remaining group can't close the gap.
		return
	case currentValue > b.window:
		// Overshoot: already past the acceptance window.
		return
	case feePremiumPositive && currentWaste > b.bestWaste:
		// Waste can only grow from here under a positive fee premium,
		// so no selection below this node can beat the current best.
		return
	}

	if currentValue >= b.actualTarget {
		totalWaste := currentWaste + (currentValue - b.actualTarget)
		if totalWaste <= b.bestWaste {
			b.bestWaste = totalWaste
			b.bestSelection = append([]*Group(nil), selected...)
		}

		return
	}

	if i >= len(b.pool) {
		return
	}

	g := b.pool[i]
	nextAvailable := availableValue - g.EffectiveValue

	// Equivalence skip: group i-1 was omitted on this path, and group i
	// matches it on both effective value and fee, so including i here
	// would reach a selection equivalent to one reachable by omitting
	// i-1 and including i's successor instead — force omission.
	skipInclude := prevOmitted && i > 0 &&
		b.pool[i-1].EffectiveValue == g.EffectiveValue &&
		b.pool[i-1].Fee == g.Fee

	if !skipInclude {
		if g.EffectiveValue <= 0 {
			panic("coinselect: non-positive effective value reached SelectCoinsBnB")
		}

		selected = append(selected, g)
		b.search(
			i+1, currentValue+g.EffectiveValue,
			currentWaste+g.Fee-g.LongTermFee,
			nextAvailable, selected, false,
		)
		selected = selected[:len(selected)-1]

		if b.triesLeft <= 0 {
			return
		}
	}

	b.search(i+1, currentValue, currentWaste, nextAvailable, selected, true)
}
