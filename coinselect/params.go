// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"github.com/Lincoln101-ai/bitcoin/pkg/btcunit"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txrules"
)

// Params bundles the fee model and change-output policy shared by both
// selectors. Callers build one Params per call using a struct literal,
// matching how wallet/tx_creator.go's InputsPolicy and TxIntent are
// constructed rather than through a builder.
type Params struct {
	// MinViableChange is the smallest change amount worth creating, as
	// reported by ViableChange. Defaults to MinChange when left zero.
	// Neither selector reads it; KnapsackSolver uses MinChange.
	MinViableChange btcutil.Amount

	// ChangeOutputSize is the size, in virtual bytes, of a prospective
	// change output.
	ChangeOutputSize btcunit.VByte

	// ChangeScriptSize is the size, in bytes, of the change output's
	// spending script alone, used for the dust check rather than the
	// whole-output vbyte estimate ChangeOutputSize carries.
	ChangeScriptSize int

	// ChangeSpendSize is the estimated size, in virtual bytes, of
	// spending the change output at some point in the future.
	ChangeSpendSize btcunit.VByte

	// EffectiveFeeRate is the fee rate used to compute each descriptor's
	// effective value and the cost of creating a change output now.
	EffectiveFeeRate btcunit.SatPerVByte

	// LongTermFeeRate is the fee rate used to estimate the future cost
	// of spending a change output, feeding the waste metric's
	// consolidation-vs-deferral tradeoff.
	LongTermFeeRate btcunit.SatPerVByte

	// DiscardFeeRate is the fee rate past which a change output smaller
	// than its own cost to spend is discarded to fees instead of
	// created.
	DiscardFeeRate btcunit.SatPerVByte

	// TxNoInputsSize is the size, in virtual bytes, of the transaction
	// template excluding any inputs: outputs, version, locktime, and
	// segwit marker/flag.
	TxNoInputsSize btcunit.VByte

	// SubtractFeeOutputs is true when the recipient output(s) absorb the
	// transaction fee, so Group.SelectionAmount and SelectionResult.Total
	// use Group.Value rather than Group.EffectiveValue. SelectCoinsBnB
	// and KnapsackSolver take no Params and always search on
	// EffectiveValue.
	SubtractFeeOutputs bool

	// AvoidPartialSpends is true when a Group containing more than one
	// descriptor must be selected or rejected as a whole, never split.
	AvoidPartialSpends bool
}

// ChangeOutputFee returns the cost of including the change output in the
// transaction at the effective fee rate.
func (p Params) ChangeOutputFee() btcutil.Amount {
	return p.EffectiveFeeRate.FeeForVByte(p.ChangeOutputSize)
}

// ChangeSpendFee returns the estimated future cost of spending the change
// output at the long-term fee rate, used by the waste metric.
func (p Params) ChangeSpendFee() btcutil.Amount {
	return p.LongTermFeeRate.FeeForVByte(p.ChangeSpendSize)
}

// CostOfChange is the total cost attributable to creating a change output:
// the fee to include it now plus the estimated fee to spend it later. This
// is the per-call costOfChange argument that SelectCoinsBnB adds above its
// target as the width of its acceptance window.
func (p Params) CostOfChange() btcutil.Amount {
	return p.ChangeOutputFee() + p.ChangeSpendFee()
}

// NotInputFees returns the fee, at the effective rate, contributed by every
// part of the transaction other than its inputs.
func (p Params) NotInputFees() btcutil.Amount {
	return p.EffectiveFeeRate.FeeForVByte(p.TxNoInputsSize)
}

// ViableChange returns the configured minimum change amount, falling
// back to the package default when unset.
func (p Params) ViableChange() btcutil.Amount {
	if p.MinViableChange > 0 {
		return p.MinViableChange
	}

	return MinChange
}

// ChangeIsDust reports whether a change output of the given amount would
// be rejected as dust at the discard fee rate, by running
// txrules.IsDustOutput on an output of that value whose script is
// ChangeScriptSize bytes long.
func (p Params) ChangeIsDust(amount btcutil.Amount) bool {
	relayFeePerKB := p.DiscardFeeRate.FeeForKVByte(btcunit.NewKVByte(1))

	changeOutput := &wire.TxOut{
		Value:    int64(amount),
		PkScript: make([]byte, p.ChangeScriptSize),
	}

	return txrules.IsDustOutput(changeOutput, relayFeePerKB)
}
