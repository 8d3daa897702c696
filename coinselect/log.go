// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btclog"

// log is the package-level logger used throughout coinselect. It is
// disabled by default so importers that never call UseLogger see no
// output.
var log btclog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output. Logging is disabled by
// default until either UseLogger or DisableLog is called.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger sets the package-wide logger used by coinselect. This should
// be called before coinselect is used if the caller wants to see log
// output; until it is called, logging stays disabled.
func UseLogger(logger btclog.Logger) {
	log = logger
}
