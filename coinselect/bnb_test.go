// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

// singletonGroup builds a Group containing one descriptor of the given
// effective value, with Fee and LongTermFee set so the waste metric has
// something non-trivial to compute.
func singletonGroup(index uint32, effectiveValue, fee, longTermFee btcutil.Amount) *Group {
	g := NewGroup()
	d := descriptorWithValue(index, effectiveValue+fee, fee, longTermFee)
	g.Insert(d, 6, true, 0, 0, false)

	return g
}

func TestSelectCoinsBnBExactMatch(t *testing.T) {
	// 15_000+9_000 falls short of target and 25_000+anything overshoots
	// the window, so {25_000} is the only group combination that ever
	// reaches actualTarget — no tie-break ambiguity with the <= rule.
	groups := []*Group{
		singletonGroup(0, 9_000, 100, 100),
		singletonGroup(1, 15_000, 100, 100),
		singletonGroup(2, 25_000, 100, 100),
	}

	res, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, btcutil.Amount(25_000), res.Groups[0].EffectiveValue)
	require.Equal(t, btcutil.Amount(0), res.Waste)
	require.Equal(t, btcutil.Amount(25_100), res.Value)
}

func TestSelectCoinsBnBCombinesMultipleGroups(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 10_000, 100, 100),
		singletonGroup(1, 15_000, 100, 100),
		singletonGroup(2, 1_000, 100, 100),
	}

	res, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.NoError(t, err)

	var total btcutil.Amount
	for _, g := range res.Groups {
		total += g.EffectiveValue
	}
	require.Equal(t, btcutil.Amount(25_000), total)
}

func TestSelectCoinsBnBAcceptsWithinWindow(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 25_200, 100, 100),
	}

	res, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, btcutil.Amount(200), res.Waste)
}

func TestSelectCoinsBnBRejectsBeyondWindow(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 30_000, 100, 100),
	}

	_, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.ErrorIs(t, err, ErrNoAcceptableSelection)
}

func TestSelectCoinsBnBInsufficientFunds(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 1_000, 10, 10),
		singletonGroup(1, 2_000, 10, 10),
	}

	_, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestSelectCoinsBnBEmptyPool(t *testing.T) {
	_, err := SelectCoinsBnB(nil, 1000, 0, 0)
	require.ErrorIs(t, err, ErrEmptyGroupPool)
}

func TestSelectCoinsBnBNonPositiveTarget(t *testing.T) {
	groups := []*Group{singletonGroup(0, 1_000, 10, 10)}

	_, err := SelectCoinsBnB(groups, 0, 0, 0)
	require.ErrorIs(t, err, ErrNonPositiveTarget)

	_, err = SelectCoinsBnB(groups, -1, 0, 0)
	require.ErrorIs(t, err, ErrNonPositiveTarget)
}

func TestSelectCoinsBnBPrefersLowestWaste(t *testing.T) {
	groups := []*Group{
		// Exact match: no excess, waste -150 from the fee premium alone.
		singletonGroup(0, 25_000, 50, 200),
		// Overshoots by 100 within the window: waste -50, worse.
		singletonGroup(1, 25_100, 50, 200),
	}

	res, err := SelectCoinsBnB(groups, 25_000, 1000, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, btcutil.Amount(25_000), res.Groups[0].EffectiveValue)
}

// TestSelectCoinsBnBFindsExactMatchAcrossEqualValuedGroups guards against
// an equivalence skip that fires on effective-value equality alone: two
// equal-valued groups must still combine to an exact match.
func TestSelectCoinsBnBFindsExactMatchAcrossEqualValuedGroups(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 5_000, 50, 50),
		singletonGroup(1, 5_000, 50, 50),
	}

	res, err := SelectCoinsBnB(groups, 10_000, 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	require.Equal(t, btcutil.Amount(0), res.Waste)
}

// TestSelectCoinsBnBEquivalenceSkipDoesNotDropValidSelections checks that
// three identical groups still yield a valid two-of-three combination:
// the equivalence skip must only collapse branches equivalent to one
// already reachable via omission, never an attainable target.
func TestSelectCoinsBnBEquivalenceSkipDoesNotDropValidSelections(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 1_000, 10, 5),
		singletonGroup(1, 1_000, 10, 5),
		singletonGroup(2, 1_000, 10, 5),
	}

	res, err := SelectCoinsBnB(groups, 2_000, 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)

	var total btcutil.Amount
	for _, g := range res.Groups {
		total += g.EffectiveValue
	}
	require.Equal(t, btcutil.Amount(2_000), total)
}

// TestSelectCoinsBnBEquivalenceSkipDistinguishesFee checks that two
// groups sharing an effective value but differing on fee are never
// treated as equivalent: the lower-waste option must still win.
func TestSelectCoinsBnBEquivalenceSkipDistinguishesFee(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 5_000, 50, 10),
		singletonGroup(1, 5_000, 10, 10),
	}

	res, err := SelectCoinsBnB(groups, 5_000, 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, btcutil.Amount(0), res.Waste)
}

// TestSelectCoinsBnBWastePruningPreservesOptimalSelection exercises the
// waste prune directly: combining the two smaller groups is reachable
// but strictly worse, and must not survive the positive-fee-premium
// prune once the cheaper exact match has already been recorded.
func TestSelectCoinsBnBWastePruningPreservesOptimalSelection(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 5_000, 100, 10),
		singletonGroup(1, 5_000, 100, 10),
		singletonGroup(2, 10_000, 100, 10),
	}

	res, err := SelectCoinsBnB(groups, 10_000, 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, btcutil.Amount(10_000), res.Groups[0].EffectiveValue)
	require.Equal(t, btcutil.Amount(90), res.Waste)
}

// TestSelectCoinsBnBSelectionAlwaysWithinWindow is a generative property
// test: across many randomized pools, any selection returned always has
// an effective-value total inside [target, target+costOfChange].
func TestSelectCoinsBnBSelectionAlwaysWithinWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(8)
		groups := make([]*Group, n)
		var total btcutil.Amount

		for i := 0; i < n; i++ {
			value := btcutil.Amount(1_000 + rng.Intn(50_000))
			groups[i] = singletonGroup(uint32(i), value, 50, 50)
			total += value
		}

		target := btcutil.Amount(1 + rng.Intn(int(total)))
		costOfChange := btcutil.Amount(500)

		res, err := SelectCoinsBnB(groups, target, costOfChange, 0)
		if err != nil {
			continue
		}

		var sum btcutil.Amount
		for _, g := range res.Groups {
			sum += g.EffectiveValue
		}

		require.GreaterOrEqual(t, sum, target)
		require.LessOrEqual(t, sum, target+costOfChange)
	}
}

// TestSelectCoinsBnBNoDuplicateOutpoints checks that a returned selection
// never spends the same outpoint twice across its groups.
func TestSelectCoinsBnBNoDuplicateOutpoints(t *testing.T) {
	groups := []*Group{
		singletonGroup(0, 5_000, 50, 50),
		singletonGroup(1, 7_000, 50, 50),
		singletonGroup(2, 9_000, 50, 50),
		singletonGroup(3, 11_000, 50, 50),
	}

	res, err := SelectCoinsBnB(groups, 20_000, 500, 0)
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, g := range res.Groups {
		for _, d := range g.Outputs {
			require.False(t, seen[d.OutPoint.Index])
			seen[d.OutPoint.Index] = true
		}
	}
}
