// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txsizes"
)

// Coin is a raw spendable UTXO as known to a caller's wallet backend,
// before it has been wrapped into a Descriptor carrying fee and
// effective-value information. It is grounded on Coin in
// wallet/tx_creator.go.
type Coin struct {
	wire.TxOut
	wire.OutPoint

	// Depth is the coin's confirmation depth. Zero means unconfirmed.
	Depth int

	// FromMe is true when the coin pays to an address controlled by the
	// caller's own wallet.
	FromMe bool

	// Ancestors is the number of unconfirmed ancestors in the coin's
	// transaction chain.
	Ancestors uint64

	// Descendants is the number of unconfirmed descendants spending
	// from this coin's transaction.
	Descendants uint64
}

// BuildDescriptor converts a raw Coin into a Descriptor at the given fee
// rates, in satoshis per virtual byte, estimating InputBytes from the coin's output script via
// txsizes.GetMinInputVirtualSize the same way the reference wallet
// estimates whether an input is worth spending before ever invoking a
// selector.
func BuildDescriptor(c Coin, feeRate, longTermFeeRate btcutil.Amount) *Descriptor {
	inputSize := txsizes.GetMinInputVirtualSize(c.TxOut.PkScript)

	fee := feeRate * btcutil.Amount(inputSize)
	longTermFee := longTermFeeRate * btcutil.Amount(inputSize)

	return NewDescriptor(c.OutPoint, &c.TxOut, fee, longTermFee, inputSize)
}

// YieldsPositively reports whether spending c at feeRatePerKb would add
// more value to a transaction than it costs in fees, using the same
// best-case virtual-size estimate as BuildDescriptor. It is grounded on
// inputYieldsPositively in wallet/tx_creator.go.
func YieldsPositively(c Coin, feeRatePerKb btcutil.Amount) bool {
	inputSize := txsizes.GetMinInputVirtualSize(c.TxOut.PkScript)
	inputFee := feeRatePerKb * btcutil.Amount(inputSize) / 1000

	return inputFee < btcutil.Amount(c.TxOut.Value)
}

// BuildGroups partitions a pool of coins into Groups, keying by output
// script when avoidPartialSpends is set so that every coin paying to the
// same destination is selected or excluded together, and otherwise
// placing each coin into its own singleton group. positiveOnly is
// forwarded to Group.Insert, dropping any coin whose effective value at
// the given fee rate is non-positive.
func BuildGroups(coins []Coin, feeRate, longTermFeeRate btcutil.Amount,
	avoidPartialSpends, positiveOnly bool) []*Group {

	if !avoidPartialSpends {
		groups := make([]*Group, 0, len(coins))
		for _, c := range coins {
			g := NewGroup()
			d := BuildDescriptor(c, feeRate, longTermFeeRate)
			g.Insert(d, c.Depth, c.FromMe, c.Ancestors, c.Descendants,
				positiveOnly)

			if len(g.Outputs) > 0 {
				groups = append(groups, g)
			}
		}

		return groups
	}

	byScript := make(map[string]*Group)
	var order []string

	for _, c := range coins {
		key := string(c.TxOut.PkScript)

		g, ok := byScript[key]
		if !ok {
			g = NewGroup()
			byScript[key] = g
			order = append(order, key)
		}

		d := BuildDescriptor(c, feeRate, longTermFeeRate)
		g.Insert(d, c.Depth, c.FromMe, c.Ancestors, c.Descendants,
			positiveOnly)
	}

	groups := make([]*Group, 0, len(order))
	for _, key := range order {
		if g := byScript[key]; len(g.Outputs) > 0 {
			groups = append(groups, g)
		}
	}

	return groups
}

// FilterEligible returns the subset of groups that satisfy filter,
// mirroring findEligibleOutputs/getEligibleUTXOsFromList in
// wallet/tx_creator.go, generalized from raw database lookups to operate
// on already-built Groups.
func FilterEligible(groups []*Group, filter EligibilityFilter) []*Group {
	eligible := make([]*Group, 0, len(groups))
	for _, g := range groups {
		if g.EligibleForSpending(filter) {
			eligible = append(eligible, g)
		}
	}

	return eligible
}
