// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// SelectionAlgorithm identifies which selector produced a SelectionResult,
// used by callers that fall back from BnB to Knapsack to log or report
// which strategy ultimately succeeded.
type SelectionAlgorithm uint8

const (
	// AlgorithmBnB marks a result produced by SelectCoinsBnB.
	AlgorithmBnB SelectionAlgorithm = iota

	// AlgorithmKnapsack marks a result produced by KnapsackSolver.
	AlgorithmKnapsack
)

// String implements fmt.Stringer.
func (a SelectionAlgorithm) String() string {
	switch a {
	case AlgorithmBnB:
		return "branch-and-bound"
	case AlgorithmKnapsack:
		return "knapsack"
	default:
		return "unknown"
	}
}

// SelectionResult is the shared output container returned by both
// selectors: the chosen groups, the change amount the caller should
// create (zero when none is needed), the waste incurred by the
// selection, and the algorithm that produced it.
//
// SelectionResult is grounded on SelectionResult in the reference
// wallet's coinselection.h, narrowed to the fields the selectors in this
// package actually populate.
type SelectionResult struct {
	// Groups is the set of groups chosen for spending.
	Groups []*Group

	// Target is the amount the selection was attempting to satisfy,
	// copied from the call that produced this result.
	Target btcutil.Amount

	// UseEffective records whether the selection was made against
	// effective values (the common case) or nominal values
	// (Params.SubtractFeeOutputs).
	UseEffective bool

	// Algorithm identifies which selector produced this result.
	Algorithm SelectionAlgorithm

	// Waste is the waste metric computed for this selection. It is only
	// meaningful for AlgorithmBnB results; KnapsackSolver leaves it
	// zero.
	Waste btcutil.Amount

	// Value is the sum of the nominal (pre-fee) values of every
	// selected group — the value_ret both selectors must emit
	// regardless of whether they searched on effective or nominal
	// value. Callers assembling a transaction use this rather than
	// Total, which recomputes a total from Params at call time.
	Value btcutil.Amount
}

// nominalTotal sums the nominal values of a group slice, used by both
// selectors to populate SelectionResult.Value.
func nominalTotal(groups []*Group) btcutil.Amount {
	var total btcutil.Amount
	for _, g := range groups {
		total += g.Value
	}

	return total
}

// Total returns the sum of the selection amounts of every included group,
// using params to decide between nominal and effective value.
func (r *SelectionResult) Total(params Params) btcutil.Amount {
	var total btcutil.Amount
	for _, g := range r.Groups {
		total += g.SelectionAmount(params)
	}

	return total
}

// Change returns the excess value the selection produced beyond its
// target, clamped to zero. Callers combine this with Params to decide
// whether the excess is large enough to justify a real change output, or
// should instead be routed to fees.
func (r *SelectionResult) Change(params Params) btcutil.Amount {
	excess := r.Total(params) - r.Target
	if excess < 0 {
		return 0
	}

	return excess
}

// OutPoints returns the deduplicated set of outpoints spent by this
// selection, flattening every descriptor across every included group.
func (r *SelectionResult) OutPoints() fn.Set[wire.OutPoint] {
	var ops []wire.OutPoint
	for _, g := range r.Groups {
		for _, d := range g.Outputs {
			ops = append(ops, d.OutPoint)
		}
	}

	return fn.NewSet(ops...)
}

// Equal reports whether two results spend the exact same set of
// outpoints, regardless of group boundaries, ordering, or which
// algorithm produced them. The branch-and-bound equivalence skip does not
// use it; that skip compares adjacent groups' EffectiveValue and Fee.
func (r *SelectionResult) Equal(other *SelectionResult) bool {
	if r == nil || other == nil {
		return r == other
	}

	a, b := r.OutPoints(), other.OutPoints()
	if len(a) != len(b) {
		return false
	}

	for op := range a {
		if !b.Contains(op) {
			return false
		}
	}

	return true
}
