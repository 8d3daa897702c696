// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func p2wkhScript(t *testing.T, lastByte byte) []byte {
	t.Helper()

	pkScript := make([]byte, 22)
	pkScript[0] = txscript.OP_0
	pkScript[1] = txscript.OP_DATA_20
	pkScript[21] = lastByte

	return pkScript
}

func TestBuildDescriptorEstimatesInputSize(t *testing.T) {
	coin := Coin{
		TxOut:    wire.TxOut{Value: 50_000, PkScript: p2wkhScript(t, 1)},
		OutPoint: wire.OutPoint{Index: 0},
	}

	d := BuildDescriptor(coin, 10, 5)

	require.Equal(t, btcutil.Amount(50_000), d.Value())
	require.Greater(t, d.InputBytes, 0)
	require.Less(t, d.EffectiveValue, d.Value())
}

func TestYieldsPositively(t *testing.T) {
	cheap := Coin{
		TxOut: wire.TxOut{Value: 1_000_000, PkScript: p2wkhScript(t, 1)},
	}
	require.True(t, YieldsPositively(cheap, 10))

	dust := Coin{
		TxOut: wire.TxOut{Value: 1, PkScript: p2wkhScript(t, 1)},
	}
	require.False(t, YieldsPositively(dust, 100_000))
}

func TestBuildGroupsWithoutAvoidPartialSpends(t *testing.T) {
	script := p2wkhScript(t, 1)
	coins := []Coin{
		{TxOut: wire.TxOut{Value: 10_000, PkScript: script}, OutPoint: wire.OutPoint{Index: 0}, Depth: 6, FromMe: true},
		{TxOut: wire.TxOut{Value: 20_000, PkScript: script}, OutPoint: wire.OutPoint{Index: 1}, Depth: 6, FromMe: true},
	}

	groups := BuildGroups(coins, 10, 5, false, false)
	require.Len(t, groups, 2)
}

func TestBuildGroupsWithAvoidPartialSpends(t *testing.T) {
	scriptA := p2wkhScript(t, 1)
	scriptB := p2wkhScript(t, 2)

	coins := []Coin{
		{TxOut: wire.TxOut{Value: 10_000, PkScript: scriptA}, OutPoint: wire.OutPoint{Index: 0}, Depth: 6, FromMe: true},
		{TxOut: wire.TxOut{Value: 20_000, PkScript: scriptA}, OutPoint: wire.OutPoint{Index: 1}, Depth: 6, FromMe: true},
		{TxOut: wire.TxOut{Value: 5_000, PkScript: scriptB}, OutPoint: wire.OutPoint{Index: 2}, Depth: 6, FromMe: true},
	}

	groups := BuildGroups(coins, 10, 5, true, false)
	require.Len(t, groups, 2)

	for _, g := range groups {
		if len(g.Outputs) == 2 {
			require.Equal(t, btcutil.Amount(30_000), g.Value)
		}
	}
}

func TestBuildGroupsPositiveOnlyDropsUneconomicCoins(t *testing.T) {
	script := p2wkhScript(t, 1)
	coins := []Coin{
		{TxOut: wire.TxOut{Value: 1, PkScript: script}, OutPoint: wire.OutPoint{Index: 0}, Depth: 6, FromMe: true},
	}

	groups := BuildGroups(coins, 100_000, 100_000, false, true)
	require.Empty(t, groups)
}

func TestFilterEligible(t *testing.T) {
	filter := EligibilityFilter{ConfMine: 6}

	confirmed := NewGroup()
	confirmed.Insert(descriptorWithValue(0, 1000, 10, 5), 6, true, 0, 0, false)

	unconfirmed := NewGroup()
	unconfirmed.Insert(descriptorWithValue(1, 1000, 10, 5), 0, true, 0, 0, false)

	eligible := FilterEligible([]*Group{confirmed, unconfirmed}, filter)
	require.Len(t, eligible, 1)
	require.Same(t, confirmed, eligible[0])
}
