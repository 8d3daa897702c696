// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

// EligibilityFilter describes the confirmation and topology requirements
// a Group must satisfy before it may be offered to the selectors. It is
// grounded on CoinEligibilityFilter in the reference wallet's
// coinselection.h, expressed as a plain struct literal (with a documented
// zero value) rather than the constructor-overload ladder the C++ type
// uses, matching how the teacher's own policy structs (InputsPolicy,
// TxIntent in wallet/tx_creator.go) favor literals over builders.
type EligibilityFilter struct {
	// ConfMine is the minimum confirmation depth required for groups
	// that are entirely self-owned.
	ConfMine int

	// ConfTheirs is the minimum confirmation depth required for groups
	// containing at least one foreign-owned output.
	ConfTheirs int

	// MaxAncestors caps the number of unconfirmed ancestors a group may
	// have.
	MaxAncestors uint64

	// MaxDescendants caps the number of unconfirmed descendants a group
	// may have.
	MaxDescendants uint64

	// IncludePartialGroups, when set, admits partial destination groups
	// even when avoid_reuse would otherwise prefer only full groups.
	// The zero value (false) matches the reference default.
	IncludePartialGroups bool
}
