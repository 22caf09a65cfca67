// Package util carries the chain arithmetic shared across go-txcore: merkle
// root construction, lock time finality, amount formatting and the common
// prometheus bucket layouts.
package util

import (
	"github.com/bsv-blockchain/go-txcore/model"
)

// LockTimeThreshold separates the two lock time interpretations: values
// below it are block heights, values at or above it are unix timestamps.
const LockTimeThreshold uint32 = 500_000_000

// IsTransactionFinal reports whether a transaction's lock time constraint is
// satisfied at the given chain position. A zero lock time is always final.
// Otherwise the lock time is compared against the block height when it is
// below LockTimeThreshold, and against the median block time (the BIP 113
// median of the previous 11 block timestamps) when it is at or above it; the
// transaction is final when the lock time is strictly below that basis.
// A transaction whose lock time has not matured is still final when every
// input carries the maximum sequence number, which disables the lock time.
func IsTransactionFinal(tx *model.Tx, blockHeight uint32, medianBlockTime uint32) bool {
	if tx.LockTime == 0 {
		return true
	}

	basis := medianBlockTime
	if tx.LockTime < LockTimeThreshold {
		basis = blockHeight
	}

	if tx.LockTime < basis {
		return true
	}

	for _, input := range tx.Inputs {
		if !input.IsFinal() {
			return false
		}
	}

	return true
}
