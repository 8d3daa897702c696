// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// coinselect-demo loads a UTXO set from a JSON file, builds groups from
// it, runs the branch-and-bound selector, falls back to the Knapsack
// selector if BnB can't find an acceptable selection, and assembles a
// demonstration unsigned transaction from whichever selection succeeds.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Lincoln101-ai/bitcoin/coinselect"
	"github.com/Lincoln101-ai/bitcoin/pkg/btcunit"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btcwallet/wallet/txauthor"
	flags "github.com/jessevdk/go-flags"
	"github.com/jrick/logrotate/rotator"
)

// utxoRecord is the on-disk shape of a single spendable output in the
// demo's UTXO-set file.
type utxoRecord struct {
	TxID        string `json:"txid"`
	Vout        uint32 `json:"vout"`
	Value       int64  `json:"value"`
	PkScript    string `json:"pk_script_hex"`
	Depth       int    `json:"depth"`
	FromMe      bool   `json:"from_me"`
	Ancestors   uint64 `json:"ancestors"`
	Descendants uint64 `json:"descendants"`
}

type options struct {
	UTXOSet       string `long:"utxo-set" description:"path to the UTXO-set JSON file" required:"true"`
	TargetSat     int64  `long:"target" description:"target amount to select, in satoshis" required:"true"`
	FeeRateSatVB  int64  `long:"feerate" description:"effective fee rate, in sat/vbyte" default:"10"`
	LongTermSatVB int64  `long:"long-term-feerate" description:"long-term fee rate, in sat/vbyte" default:"10"`
	AvoidPartial  bool   `long:"avoid-partial-spends" description:"group outputs by destination script"`
	ChangeVBytes  uint64 `long:"change-vbytes" description:"virtual size of the change output" default:"31"`
	Debug         bool   `long:"debug" description:"enable debug logging"`
	LogFile       string `long:"log-file" description:"path to a rotated log file; logs to stderr only when unset"`
}

var log btclog.Logger = btclog.Disabled

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "coinselect-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}

		return err
	}

	closeLog, err := setupLogging(opts.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	records, err := loadUTXOSet(opts.UTXOSet)
	if err != nil {
		return fmt.Errorf("loading utxo set: %w", err)
	}

	coins, err := recordsToCoins(records)
	if err != nil {
		return fmt.Errorf("decoding utxo records: %w", err)
	}

	feeRate := btcutil.Amount(opts.FeeRateSatVB)
	longTermFeeRate := btcutil.Amount(opts.LongTermSatVB)

	groups := coinselect.BuildGroups(
		coins, feeRate, longTermFeeRate, opts.AvoidPartial, true,
	)
	if len(groups) == 0 {
		return coinselect.ErrEmptyGroupPool
	}

	target := btcutil.Amount(opts.TargetSat)

	params := coinselect.Params{
		ChangeOutputSize: btcunit.NewVByte(opts.ChangeVBytes),
		ChangeSpendSize:  btcunit.NewVByte(68),
		ChangeScriptSize: 22,
		EffectiveFeeRate: btcunit.NewSatPerVByte(feeRate),
		LongTermFeeRate:  btcunit.NewSatPerVByte(longTermFeeRate),
		DiscardFeeRate:   btcunit.NewSatPerVByte(feeRate),
	}

	res, err := coinselect.SelectCoinsBnB(
		groups, target, params.CostOfChange(), 0,
	)
	if err != nil {
		log.Debugf("BnB selection failed (%v), falling back to knapsack", err)

		res, err = coinselect.KnapsackSolver(target, groups)
		if err != nil {
			return fmt.Errorf("coin selection failed: %w", err)
		}
	}

	log.Debugf("selected %d group(s) via %s, total %v, waste %v",
		len(res.Groups), res.Algorithm, res.Total(params), res.Waste)

	if change := res.Change(params); change > 0 && params.ChangeIsDust(change) {
		log.Debugf("change amount %v is dust, routing to fees", change)
	}

	tx, err := assembleDemoTransaction(res, target, feeRate)
	if err != nil {
		return fmt.Errorf("assembling demo transaction: %w", err)
	}

	fmt.Printf("selected %d input(s), total %v sat, change index %d\n",
		len(tx.Tx.TxIn), res.Total(params), tx.ChangeIndex)

	return nil
}

// assembleDemoTransaction builds an unsigned transaction from the
// selection result using txauthor.NewUnsignedTransaction, the same entry
// point wallet/tx_creator.go's CreateTransaction calls into.
func assembleDemoTransaction(res *coinselect.SelectionResult,
	target, feeRate btcutil.Amount) (*txauthor.AuthoredTx, error) {

	var descriptors []*coinselect.Descriptor
	for _, g := range res.Groups {
		descriptors = append(descriptors, g.Outputs...)
	}

	inputSource := func(_ btcutil.Amount) (btcutil.Amount,
		[]*wire.TxIn, []btcutil.Amount, [][]byte, error) {

		var (
			total   btcutil.Amount
			ins     []*wire.TxIn
			values  []btcutil.Amount
			scripts [][]byte
		)

		for _, d := range descriptors {
			op := d.OutPoint
			ins = append(ins, wire.NewTxIn(&op, nil, nil))
			values = append(values, d.Value())
			scripts = append(scripts, d.TxOut.PkScript)
			total += d.Value()
		}

		return total, ins, values, scripts, nil
	}

	// The demo sends the entire selection to a single dummy output of
	// the target amount; the remainder, if any, becomes change.
	outputs := []*wire.TxOut{
		wire.NewTxOut(int64(target), make([]byte, 22)),
	}

	changeSource := &txauthor.ChangeSource{
		ScriptSize: 22,
		NewScript: func() ([]byte, error) {
			return make([]byte, 22), nil
		},
	}

	return txauthor.NewUnsignedTransaction(
		outputs, feeRate*1000, inputSource, changeSource,
	)
}

// recordsToCoins converts the raw JSON records into coinselect.Coin
// values, decoding each outpoint's hash and each output's script from
// hex.
func recordsToCoins(records []utxoRecord) ([]coinselect.Coin, error) {
	coins := make([]coinselect.Coin, 0, len(records))

	for _, rec := range records {
		txHash, err := chainhash.NewHashFromStr(rec.TxID)
		if err != nil {
			return nil, fmt.Errorf("utxo %s:%d: %w", rec.TxID, rec.Vout, err)
		}

		pkScript, err := hex.DecodeString(rec.PkScript)
		if err != nil {
			return nil, fmt.Errorf("utxo %s:%d: %w", rec.TxID, rec.Vout, err)
		}

		coins = append(coins, coinselect.Coin{
			TxOut:       wire.TxOut{Value: rec.Value, PkScript: pkScript},
			OutPoint:    wire.OutPoint{Hash: *txHash, Index: rec.Vout},
			Depth:       rec.Depth,
			FromMe:      rec.FromMe,
			Ancestors:   rec.Ancestors,
			Descendants: rec.Descendants,
		})
	}

	return coins, nil
}

func loadUTXOSet(path string) ([]utxoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []utxoRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing utxo set: %w", err)
	}

	return records, nil
}

// setupLogging configures the package-level loggers, writing to a
// rotated log file when logFile is set and to stderr otherwise. The
// returned func must be called on exit to flush and close the rotator.
func setupLogging(logFile string, debug bool) (func(), error) {
	writer := io.Writer(os.Stderr)
	closeFn := func() {}

	if logFile != "" {
		//nolint:mnd // 10 MiB rolls (threshold is in KiB), keep 3.
		r, err := rotator.New(logFile, 10*1024, false, 3)
		if err != nil {
			return nil, fmt.Errorf("creating log rotator: %w", err)
		}

		writer = r
		closeFn = func() { _ = r.Close() }
	}

	backend := btclog.NewBackend(writer)
	logger := backend.Logger("CSDM")

	level := btclog.LevelInfo
	if debug {
		level = btclog.LevelDebug
	}
	logger.SetLevel(level)

	coinselect.UseLogger(logger)
	log = logger

	return closeFn, nil
}
