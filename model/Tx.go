// Package model defines the transaction data model for go-txcore: the
// transaction itself, its inputs and outputs, outpoints and unspent output
// candidates, together with the canonical wire codec and the double-SHA256
// digests that identify a transaction.
package model

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/go-txcore/errors"
	"github.com/bsv-blockchain/go-wire"
	"github.com/ordishs/go-utils"
)

// Tx is a ledger transaction. A transaction is treated as immutable once a
// digest has been computed from it: digests are recomputed from the current
// field values on every call and are never cached, so a caller that mutates
// a transaction must recompute any digest it obtained earlier.
type Tx struct {
	Version  uint32
	Inputs   []*TxInput
	Outputs  []*TxOutput
	LockTime uint32
}

// NewTxFromBytes parses the canonical wire layout produced by Bytes.
// Truncated or malformed input yields a tx invalid error.
func NewTxFromBytes(txBytes []byte) (*Tx, error) {
	tx := &Tx{}

	buf := bytes.NewReader(txBytes)

	version, err := readUint32(buf)
	if err != nil {
		return nil, errors.NewTxInvalidError("error reading version", err)
	}

	tx.Version = version

	inputCount, err := wire.ReadVarInt(buf, 0)
	if err != nil {
		return nil, errors.NewTxInvalidError("error reading input count", err)
	}

	var pointBytes [OutPointSize]byte

	for i := uint64(0); i < inputCount; i++ {
		input := &TxInput{}

		if _, err = io.ReadFull(buf, pointBytes[:]); err != nil {
			return nil, errors.NewTxInvalidError("error reading previous outpoint of input %d", i, err)
		}

		point, err := NewOutPointFromBytes(pointBytes[:])
		if err != nil {
			return nil, errors.NewTxInvalidError("error parsing previous outpoint of input %d", i, err)
		}

		input.PreviousOutPoint = *point

		script, err := readScript(buf)
		if err != nil {
			return nil, errors.NewTxInvalidError("error reading unlocking script of input %d", i, err)
		}

		input.UnlockingScript = script

		if input.SequenceNumber, err = readUint32(buf); err != nil {
			return nil, errors.NewTxInvalidError("error reading sequence of input %d", i, err)
		}

		tx.Inputs = append(tx.Inputs, input)
	}

	outputCount, err := wire.ReadVarInt(buf, 0)
	if err != nil {
		return nil, errors.NewTxInvalidError("error reading output count", err)
	}

	var satoshiBytes [8]byte

	for i := uint64(0); i < outputCount; i++ {
		output := &TxOutput{}

		if _, err = io.ReadFull(buf, satoshiBytes[:]); err != nil {
			return nil, errors.NewTxInvalidError("error reading value of output %d", i, err)
		}

		output.Satoshis = binary.LittleEndian.Uint64(satoshiBytes[:])

		script, err := readScript(buf)
		if err != nil {
			return nil, errors.NewTxInvalidError("error reading locking script of output %d", i, err)
		}

		output.LockingScript = script

		tx.Outputs = append(tx.Outputs, output)
	}

	if tx.LockTime, err = readUint32(buf); err != nil {
		return nil, errors.NewTxInvalidError("error reading lock time", err)
	}

	if buf.Len() != 0 {
		return nil, errors.NewTxInvalidError("%d trailing bytes after lock time", buf.Len())
	}

	return tx, nil
}

// NewTxFromString parses a transaction from its hex encoding.
func NewTxFromString(txHex string) (*Tx, error) {
	txBytes, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, errors.NewTxInvalidError("error decoding hex string to bytes", err)
	}

	return NewTxFromBytes(txBytes)
}

// Bytes serializes the transaction into its canonical wire layout: version,
// varint input count, the inputs, varint output count, the outputs, lock
// time. All fixed-width integers are little-endian.
func (tx *Tx) Bytes() []byte {
	txBytes := make([]byte, 0, 256)

	txBytes = binary.LittleEndian.AppendUint32(txBytes, tx.Version)

	txBytes = append(txBytes, bt.VarInt(uint64(len(tx.Inputs))).Bytes()...)
	for _, input := range tx.Inputs {
		txBytes = append(txBytes, input.PreviousOutPoint.Bytes()...)
		txBytes = appendScript(txBytes, input.UnlockingScript)
		txBytes = binary.LittleEndian.AppendUint32(txBytes, input.SequenceNumber)
	}

	txBytes = append(txBytes, bt.VarInt(uint64(len(tx.Outputs))).Bytes()...)
	for _, output := range tx.Outputs {
		txBytes = binary.LittleEndian.AppendUint64(txBytes, output.Satoshis)
		txBytes = appendScript(txBytes, output.LockingScript)
	}

	txBytes = binary.LittleEndian.AppendUint32(txBytes, tx.LockTime)

	return txBytes
}

// Size returns the serialized size of the transaction in bytes.
func (tx *Tx) Size() int {
	return len(tx.Bytes())
}

// TxIDChainHash computes the canonical transaction digest: the double
// SHA256 of the serialized transaction. This digest is the transaction's
// identifier and the leaf value used in merkle root construction.
func (tx *Tx) TxIDChainHash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.Bytes())
	return &hash
}

// TxID returns the transaction ID as a hex string in the conventional
// reversed byte order.
func (tx *Tx) TxID() string {
	return tx.TxIDChainHash().String()
}

// SignatureHash computes the digest to be signed for the given signature
// hash type: the serialized transaction with the type appended as 4
// little-endian bytes, double SHA256 hashed. The suffix is appended for
// every type including zero, so a signature hash never equals the plain
// transaction digest.
func (tx *Tx) SignatureHash(sigHashType uint32) *chainhash.Hash {
	txBytes := tx.Bytes()
	txBytes = binary.LittleEndian.AppendUint32(txBytes, sigHashType)

	hash := chainhash.DoubleHashH(txBytes)
	return &hash
}

// IsCoinbase reports whether the transaction mints new supply: exactly one
// input whose previous outpoint is the null marker.
func (tx *Tx) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].PreviousOutPoint.IsNull()
}

// TotalOutputSatoshis returns the sum of all output values.
func (tx *Tx) TotalOutputSatoshis() uint64 {
	var total uint64
	for _, output := range tx.Outputs {
		total += output.Satoshis
	}

	return total
}

// Clone returns a deep copy sharing no mutable state with the original.
func (tx *Tx) Clone() *Tx {
	clone := &Tx{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]*TxInput, 0, len(tx.Inputs)),
		Outputs:  make([]*TxOutput, 0, len(tx.Outputs)),
	}

	for _, input := range tx.Inputs {
		clone.Inputs = append(clone.Inputs, &TxInput{
			PreviousOutPoint: input.PreviousOutPoint,
			UnlockingScript:  cloneScript(input.UnlockingScript),
			SequenceNumber:   input.SequenceNumber,
		})
	}

	for _, output := range tx.Outputs {
		clone.Outputs = append(clone.Outputs, &TxOutput{
			Satoshis:      output.Satoshis,
			LockingScript: cloneScript(output.LockingScript),
		})
	}

	return clone
}

// String renders a multi-line human-readable view of the transaction. It is
// a debugging aid only and plays no part in hashing or validation.
func (tx *Tx) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Transaction %s\n", utils.ReverseAndHexEncodeSlice(tx.TxIDChainHash().CloneBytes())))
	sb.WriteString(fmt.Sprintf("\tversion = %d\n", tx.Version))
	sb.WriteString(fmt.Sprintf("\tlocktime = %d\n", tx.LockTime))

	sb.WriteString("Inputs:\n")
	for _, input := range tx.Inputs {
		sb.WriteString(input.String())
	}

	sb.WriteString("Outputs:\n")
	for _, output := range tx.Outputs {
		sb.WriteString(output.String())
	}

	return sb.String()
}

func appendScript(txBytes []byte, script *bscript.Script) []byte {
	if script == nil {
		return append(txBytes, bt.VarInt(0).Bytes()...)
	}

	txBytes = append(txBytes, bt.VarInt(uint64(len(*script))).Bytes()...)

	return append(txBytes, *script...)
}

func readScript(buf *bytes.Reader) (*bscript.Script, error) {
	scriptLen, err := wire.ReadVarInt(buf, 0)
	if err != nil {
		return nil, err
	}

	if scriptLen > uint64(buf.Len()) {
		return nil, errors.NewTxInvalidError("script length %d exceeds %d remaining bytes", scriptLen, buf.Len())
	}

	scriptLenInt, err := safeconversion.Uint64ToInt(scriptLen)
	if err != nil {
		return nil, err
	}

	scriptBytes := make([]byte, scriptLenInt)
	if _, err = io.ReadFull(buf, scriptBytes); err != nil {
		return nil, err
	}

	return bscript.NewFromBytes(scriptBytes), nil
}

func readUint32(buf *bytes.Reader) (uint32, error) {
	var u32Bytes [4]byte
	if _, err := io.ReadFull(buf, u32Bytes[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(u32Bytes[:]), nil
}

func cloneScript(script *bscript.Script) *bscript.Script {
	if script == nil {
		return nil
	}

	return bscript.NewFromBytes(append([]byte(nil), *script...))
}
