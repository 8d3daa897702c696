// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinselect implements the coin-selection core of a bitcoin
// wallet: given a pool of spendable output groups, a spending target, and
// a fee model, it chooses a subset of groups whose total value pays the
// target while minimizing long-term cost.
//
// The package is a pure computation. It performs no I/O, holds no
// long-lived state, and never touches a database, a signer, or the
// network; callers are responsible for discovering UTXOs, tracking their
// confirmations, and estimating fees before handing groups to the
// selectors in this package.
//
// Two selectors are exported. SelectCoinsBnB is a deterministic
// depth-first branch-and-bound search that tries to find a changeless
// selection within a narrow acceptance window above the target.
// KnapsackSolver is a randomized fallback, invoked when BnB cannot find a
// changeless solution, that looks for a subset whose total sits just
// above the target plus a minimum useful change amount. Callers are
// expected to try SelectCoinsBnB first and fall back to KnapsackSolver on
// failure, the way the reference wallet does.
package coinselect
