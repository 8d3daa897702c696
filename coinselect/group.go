// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btcd/btcutil"

// unconfirmedDepth is the sentinel starting depth for a freshly-created
// Group, matching OutputGroup::m_depth's default of 999 in the reference
// wallet: any real Insert immediately lowers it via a min-reduction.
const unconfirmedDepth = 999

// Group is a mutable aggregate of one or more Descriptors treated as an
// atomic selection unit, enabling the "avoid partial spends" privacy
// feature: every output belonging to the same destination script is
// selected, or none are. Groups are created empty by the caller,
// populated via Insert, and discarded after a selection call returns.
//
// Group is grounded on OutputGroup in the reference wallet's
// coinselection.h.
type Group struct {
	// Outputs is the ordered sequence of descriptors included in this
	// group.
	Outputs []*Descriptor

	// Value is the sum of the nominal values of the included
	// descriptors.
	Value btcutil.Amount

	// EffectiveValue is the sum of the included descriptors' effective
	// values. In positive_only mode, descriptors with a non-positive
	// effective value do not contribute.
	EffectiveValue btcutil.Amount

	// Fee is the sum of the included descriptors' fees.
	Fee btcutil.Amount

	// LongTermFee is the sum of the included descriptors' long-term
	// fees.
	LongTermFee btcutil.Amount

	// Depth is the minimum confirmation depth across the included
	// outputs.
	Depth int

	// FromMe is true iff every included output is self-owned.
	FromMe bool

	// Ancestors is the maximum unconfirmed-ancestor count across the
	// included outputs.
	Ancestors uint64

	// Descendants is the maximum unconfirmed-descendant count across the
	// included outputs.
	Descendants uint64
}

// NewGroup returns an empty Group ready for Insert calls.
func NewGroup() *Group {
	return &Group{
		Depth:  unconfirmedDepth,
		FromMe: true,
	}
}

// Insert adds a descriptor to the group, updating the aggregate fields.
// If positiveOnly is set and the descriptor's effective value is
// non-positive, the insertion is a no-op — the descriptor is dropped
// rather than dragging the group's effective value negative.
func (g *Group) Insert(d *Descriptor, depth int, fromMe bool,
	ancestors, descendants uint64, positiveOnly bool) {

	if positiveOnly && d.EffectiveValue <= 0 {
		return
	}

	g.Outputs = append(g.Outputs, d)
	g.Value += d.Value()
	g.EffectiveValue += d.EffectiveValue
	g.Fee += d.Fee
	g.LongTermFee += d.LongTermFee

	if depth < g.Depth {
		g.Depth = depth
	}

	g.FromMe = g.FromMe && fromMe

	if ancestors > g.Ancestors {
		g.Ancestors = ancestors
	}
	if descendants > g.Descendants {
		g.Descendants = descendants
	}
}

// EligibleForSpending reports whether this group satisfies the given
// eligibility filter's confirmation-depth and ancestor/descendant caps.
func (g *Group) EligibleForSpending(filter EligibilityFilter) bool {
	requiredConfs := filter.ConfTheirs
	if g.FromMe {
		requiredConfs = filter.ConfMine
	}

	if g.Depth < requiredConfs {
		return false
	}

	if g.Ancestors > filter.MaxAncestors {
		return false
	}
	if g.Descendants > filter.MaxDescendants {
		return false
	}

	return true
}

// SelectionAmount returns the amount this group would contribute to the
// selectors' running total: EffectiveValue normally, or Value when the
// recipient is expected to absorb fees (Params.SubtractFeeOutputs).
func (g *Group) SelectionAmount(params Params) btcutil.Amount {
	if params.SubtractFeeOutputs {
		return g.Value
	}

	return g.EffectiveValue
}
