// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand"
)

// newRand returns a *math/rand.Rand seeded from a cryptographically
// random 64-bit value. Shuffling the candidate pool is a privacy
// mechanism, not a security boundary, so a fast, non-cryptographic PRNG
// is used for the shuffle itself once seeded; this mirrors
// RandomCoinSelector's use of rand.Shuffle in wallet/tx_creator.go, with
// the seed itself drawn from crypto/rand so independent calls to
// KnapsackSolver don't repeat a shuffle order across process restarts.
func newRand() *mrand.Rand {
	var seed int64

	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(^uint64(0)>>1))
	if err == nil {
		seed = n.Int64()
	} else {
		// crypto/rand is unavailable; fall back to a seed derived
		// from the OS entropy pool via a narrower read. A failure
		// here on any real system would indicate a broken kernel
		// RNG, which is outside this package's concerns.
		var buf [8]byte
		_, _ = rand.Read(buf[:])
		seed = int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	}

	//nolint:gosec
	return mrand.New(mrand.NewSource(seed))
}
