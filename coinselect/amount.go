// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btcd/btcutil"

const (
	// MinChange is the target minimum change amount: the smallest change
	// output KnapsackSolver considers worth creating. It is one
	// hundredth of a bitcoin, matching the reference wallet's
	// MIN_CHANGE.
	MinChange = btcutil.Amount(btcutil.SatoshiPerBitcoin / 100)

	// MinFinalChange is the final minimum change amount after paying for
	// the cost of the change output itself.
	MinFinalChange = MinChange / 2

	// TotalTries bounds the number of loop iterations SelectCoinsBnB will
	// perform before giving up, ensuring worst-case bounded latency
	// regardless of pool size.
	TotalTries = 100_000

	// KnapsackIterations bounds the number of randomized rounds
	// approximateBestSubset will run per invocation.
	KnapsackIterations = 1000
)

// MaxMoney is the amount model's upper bound, reusing btcutil's consensus
// cap rather than redefining a parallel constant. Amounts handled by this
// package are expected to lie in [-MaxMoney, MaxMoney].
const MaxMoney = btcutil.MaxSatoshi
