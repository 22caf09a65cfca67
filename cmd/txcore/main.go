// Package main implements txcore, a command line tool around the
// transaction core. It computes txids and signature hashes for hex encoded
// transactions, folds txids into a merkle root, checks lock time finality
// and runs coin selection over a CSV of unspent outputs.
//
// Usage:
//
//	txcore txid --tx <hex>
//	txcore sighash --tx <hex> --type 65
//	txcore merkleroot <txid> [<txid>...]
//	txcore merkleroot --file txids.txt
//	txcore final --tx <hex> --height 850000 --mediantime 1700000000
//	txcore select --file unspent.csv --target 150000000
//
// The select command expects a CSV with a txid,vout,satoshis header.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/go-txcore/coinselect"
	"github.com/bsv-blockchain/go-txcore/errors"
	"github.com/bsv-blockchain/go-txcore/model"
	"github.com/bsv-blockchain/go-txcore/settings"
	"github.com/bsv-blockchain/go-txcore/ulogger"
	"github.com/bsv-blockchain/go-txcore/util"
	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"
)

// logger is the logger instance used by the txcore application.
var logger = ulogger.New("txcore")

// unspentRecord is one row of the CSV consumed by the select command.
type unspentRecord struct {
	TxID     string `csv:"txid"`
	Vout     uint32 `csv:"vout"`
	Satoshis uint64 `csv:"satoshis"`
}

func main() {
	app := &cli.App{
		Name:  "txcore",
		Usage: "Transaction core utilities",
		Commands: []*cli.Command{
			{
				Name:   "txid",
				Usage:  "Print the txid of a hex encoded transaction",
				Action: txidAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tx",
						Usage:    "Hex encoded transaction",
						Required: true,
					},
				},
			},
			{
				Name:   "sighash",
				Usage:  "Print the signature hash of a hex encoded transaction",
				Action: sighashAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tx",
						Usage:    "Hex encoded transaction",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:  "type",
						Usage: "Signature hash type",
						Value: 65,
					},
				},
			},
			{
				Name:      "merkleroot",
				Usage:     "Fold txids into a merkle root",
				ArgsUsage: "[txid...]",
				Action:    merkleRootAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "File with one txid per line",
					},
				},
			},
			{
				Name:   "final",
				Usage:  "Check whether a transaction is final",
				Action: finalAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tx",
						Usage:    "Hex encoded transaction",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "height",
						Usage:    "Next block height",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "mediantime",
						Usage:    "Median time of the last 11 blocks",
						Required: true,
					},
				},
			},
			{
				Name:   "select",
				Usage:  "Select unspent outputs covering a target amount",
				Action: selectAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV of unspent outputs",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "target",
						Usage:    "Target amount in satoshis",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "algorithm",
						Usage: "Selection algorithm",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func txidAction(c *cli.Context) error {
	tx, err := model.NewTxFromString(c.String("tx"))
	if err != nil {
		return err
	}

	fmt.Println(tx.TxID())

	return nil
}

func sighashAction(c *cli.Context) error {
	tx, err := model.NewTxFromString(c.String("tx"))
	if err != nil {
		return err
	}

	sigHashType, err := safeconversion.Uint64ToUint32(c.Uint64("type"))
	if err != nil {
		return err
	}

	fmt.Println(tx.SignatureHash(sigHashType))

	return nil
}

func merkleRootAction(c *cli.Context) error {
	ids := c.Args().Slice()

	if file := c.String("file"); file != "" {
		fileIDs, err := readTxIDFile(file)
		if err != nil {
			return err
		}

		ids = append(ids, fileIDs...)
	}

	if len(ids) == 0 {
		return errors.NewInvalidArgumentError("no txids given")
	}

	hashes := make([]*chainhash.Hash, 0, len(ids))

	for _, id := range ids {
		hash, err := chainhash.NewHashFromStr(id)
		if err != nil {
			return errors.NewInvalidArgumentError("invalid txid %s", id, err)
		}

		hashes = append(hashes, hash)
	}

	fmt.Println(util.BuildMerkleRoot(hashes))

	return nil
}

func finalAction(c *cli.Context) error {
	tx, err := model.NewTxFromString(c.String("tx"))
	if err != nil {
		return err
	}

	blockHeight, err := safeconversion.Uint64ToUint32(c.Uint64("height"))
	if err != nil {
		return err
	}

	medianTime, err := safeconversion.Uint64ToUint32(c.Uint64("mediantime"))
	if err != nil {
		return err
	}

	if util.IsTransactionFinal(tx, blockHeight, medianTime) {
		fmt.Println("final")
	} else {
		fmt.Printf("not final: lock time %d\n", tx.LockTime)
	}

	return nil
}

func selectAction(c *cli.Context) error {
	candidates, err := readUnspentFile(c.String("file"))
	if err != nil {
		return err
	}

	algorithmName := c.String("algorithm")
	if algorithmName == "" {
		algorithmName = settings.NewSettings().CoinSelection.DefaultAlgorithm
	}

	algorithm, err := coinselect.ParseAlgorithm(algorithmName)
	if err != nil {
		return err
	}

	result, err := coinselect.Select(candidates, c.Uint64("target"), algorithm)
	if err != nil {
		return err
	}

	if len(result.Points) == 0 {
		fmt.Println("insufficient funds")
		return nil
	}

	for _, point := range result.Points {
		fmt.Println(point.String())
	}

	fmt.Printf("change: %s\n", util.SatoshisToCoins(result.Change))

	return nil
}

// readUnspentFile parses a txid,vout,satoshis CSV into selection candidates.
func readUnspentFile(path string) ([]model.UnspentOutput, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := []unspentRecord{}
	if err = gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, errors.NewInvalidArgumentError("error parsing %s", path, err)
	}

	candidates := make([]model.UnspentOutput, 0, len(records))

	for i, record := range records {
		hash, err := chainhash.NewHashFromStr(strings.TrimSpace(record.TxID))
		if err != nil {
			return nil, errors.NewInvalidArgumentError("invalid txid on row %d", i+1, err)
		}

		candidates = append(candidates, model.UnspentOutput{
			OutPoint: model.OutPoint{Hash: *hash, Index: record.Vout},
			Satoshis: record.Satoshis,
		})
	}

	return candidates, nil
}

// readTxIDFile reads one txid per line, skipping blank lines.
func readTxIDFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ids []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ids = append(ids, line)
	}

	return ids, scanner.Err()
}
