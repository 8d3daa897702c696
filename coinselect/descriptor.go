// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Descriptor is an immutable, per-UTXO record carrying everything the
// selectors need to reason about a single spendable output: its nominal
// value, its pre-computed effective value at the current fee rate, the
// cost of spending it now versus at the long-term fee rate, and the
// opaque outpoint identity used for deduplication.
//
// Descriptor is grounded on Coin in wallet/tx_creator.go and CInputCoin in
// the reference wallet's coinselection.h, generalized to carry the
// fee/effective-value fields the selectors require instead of deriving
// them lazily.
type Descriptor struct {
	// OutPoint uniquely identifies this output and is used as the
	// dedup/set key throughout the package.
	OutPoint wire.OutPoint

	// TxOut is the underlying nominal value and spending script for this
	// output.
	TxOut wire.TxOut

	// EffectiveValue is Value() minus Fee. SelectCoinsBnB requires this
	// to be strictly positive; callers must filter non-positive
	// effective values out before calling it.
	EffectiveValue btcutil.Amount

	// Fee is the cost of spending this output as an input at the
	// current fee rate.
	Fee btcutil.Amount

	// LongTermFee is the cost of spending this output as an input at
	// the long-term fee rate, used by the waste metric to decide
	// whether consolidating now is cheaper than later.
	LongTermFee btcutil.Amount

	// InputBytes is the estimated size, in bytes, of this output once
	// spent as a fully-signed input. -1 denotes unknown.
	InputBytes int
}

// NewDescriptor builds a Descriptor from a raw outpoint and output,
// computing the effective value from the supplied fee. Constructing a
// Descriptor from a nil TxOut is a programmer error and panics, mirroring
// CInputCoin's constructor throwing on a nil transaction.
func NewDescriptor(op wire.OutPoint, txOut *wire.TxOut, fee,
	longTermFee btcutil.Amount, inputBytes int) *Descriptor {

	if txOut == nil {
		panic("coinselect: nil TxOut passed to NewDescriptor")
	}

	return &Descriptor{
		OutPoint:       op,
		TxOut:          *txOut,
		EffectiveValue: btcutil.Amount(txOut.Value) - fee,
		Fee:            fee,
		LongTermFee:    longTermFee,
		InputBytes:     inputBytes,
	}
}

// Value returns the descriptor's nominal (pre-fee) value.
func (d *Descriptor) Value() btcutil.Amount {
	return btcutil.Amount(d.TxOut.Value)
}

// Equal reports whether two descriptors refer to the same outpoint. Per
// the reference wallet's CInputCoin, identity is defined solely by the
// outpoint, not by value or script.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.OutPoint == other.OutPoint
}
