// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "errors"

var (
	// ErrInsufficientFunds is returned by SelectCoinsBnB when the total
	// effective value available across all groups falls short of the
	// actual target, and by KnapsackSolver when the total of all groups
	// below the target-plus-slack threshold is itself below the target
	// and no single larger group exists to fall back on.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoAcceptableSelection is returned by SelectCoinsBnB when the
	// search space was exhausted, or the try budget was reached, without
	// ever recording a selection inside the acceptance window.
	ErrNoAcceptableSelection = errors.New("no acceptable branch-and-bound " +
		"selection found within the try budget")

	// ErrEmptyGroupPool is returned by SelectCoinsBnB when it is called
	// with no candidate groups at all.
	ErrEmptyGroupPool = errors.New("coin selection pool is empty")

	// ErrNonPositiveTarget is returned when a selector is invoked with a
	// target amount that is not strictly positive.
	ErrNonPositiveTarget = errors.New("target amount must be positive")
)
