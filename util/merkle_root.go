package util

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-txcore/model"
)

// BuildMerkleRoot folds the given digests pairwise into a single root. Each
// level concatenates adjacent digests into 64 bytes and double SHA256 hashes
// them; a level with an odd count duplicates its last digest first. A single
// digest is its own root and an empty list yields the zero digest.
//
// Duplicating the last digest means a list whose tail repeats produces the
// same root as the list without the repeat, so a root on its own does not
// commit to the leaf count.
//
// The input slice and the digests it points to are never modified.
func BuildMerkleRoot(hashes []*chainhash.Hash) *chainhash.Hash {
	if len(hashes) == 0 {
		return &chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(hashes))
	for i, hash := range hashes {
		level[i] = *hash
	}

	var pair [2 * chainhash.HashSize]byte

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		parents := make([]chainhash.Hash, 0, len(level)/2)

		for i := 0; i < len(level); i += 2 {
			copy(pair[:chainhash.HashSize], level[i][:])
			copy(pair[chainhash.HashSize:], level[i+1][:])

			parents = append(parents, chainhash.DoubleHashH(pair[:]))
		}

		level = parents
	}

	return &level[0]
}

// BuildMerkleRootFromTxs computes the merkle root over the transactions'
// digests in the order given.
func BuildMerkleRootFromTxs(txs []*model.Tx) *chainhash.Hash {
	hashes := make([]*chainhash.Hash, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.TxIDChainHash()
	}

	return BuildMerkleRoot(hashes)
}
