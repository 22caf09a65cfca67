package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-txcore/errors"
)

// OutPointSize is the serialized size of an outpoint: the 32 byte
// transaction hash followed by the 4 byte little-endian output index.
const OutPointSize = 36

// OutPoint identifies a single output of a single transaction. Equality is
// structural, so the type can be used directly as a map key.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPointFromBytes parses the 36 byte wire encoding of an outpoint.
func NewOutPointFromBytes(b []byte) (*OutPoint, error) {
	if len(b) != OutPointSize {
		return nil, errors.NewInvalidArgumentError("outpoint should be %d bytes long, got %d", OutPointSize, len(b))
	}

	hash, err := chainhash.NewHash(b[:chainhash.HashSize])
	if err != nil {
		return nil, errors.NewInvalidArgumentError("error creating outpoint hash from bytes", err)
	}

	return &OutPoint{
		Hash:  *hash,
		Index: binary.LittleEndian.Uint32(b[chainhash.HashSize:]),
	}, nil
}

func (o *OutPoint) Bytes() []byte {
	outPointBytes := make([]byte, 0, OutPointSize)
	outPointBytes = append(outPointBytes, o.Hash[:]...)
	outPointBytes = binary.LittleEndian.AppendUint32(outPointBytes, o.Index)

	return outPointBytes
}

// IsNull reports whether the outpoint is the reserved marker carried by
// coinbase inputs: an all-zero hash with the maximum index.
func (o *OutPoint) IsNull() bool {
	return o.Index == math.MaxUint32 && o.Hash.IsEqual(&chainhash.Hash{})
}

// String renders the outpoint as "txid:index", txid in reversed hex.
func (o *OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.String(), o.Index)
}
