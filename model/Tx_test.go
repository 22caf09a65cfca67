package model

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The genesis block coinbase transaction.
const (
	genesisCoinbaseHex = "01000000010000000000000000000000000000000000000000000000000000000000000000" +
		"ffffffff0704ffff001d0104ffffffff0100f2052a01000000434104" +
		"96b538e853519c726a2c91e61ec11600ae1390813a627c66fb8be7947be63c52" +
		"da7589379515d4e0a604f8141781e62294721166bf621e73a82cbf2342c858ee" +
		"ac00000000"

	genesisCoinbaseTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
)

func TestNewTxFromStringGenesisCoinbase(t *testing.T) {
	tx, err := NewTxFromString(genesisCoinbaseHex)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), tx.Version)
	assert.Equal(t, uint32(0), tx.LockTime)
	require.Len(t, tx.Inputs, 1)
	require.Len(t, tx.Outputs, 1)

	assert.Equal(t, genesisCoinbaseTxID, tx.TxID())
	assert.Equal(t, genesisCoinbaseTxID, tx.TxIDChainHash().String())

	assert.True(t, tx.IsCoinbase())
	assert.Equal(t, uint64(5_000_000_000), tx.TotalOutputSatoshis())
	assert.Equal(t, uint32(math.MaxUint32), tx.Inputs[0].SequenceNumber)
}

func TestTxBytesRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString(genesisCoinbaseHex)
	require.NoError(t, err)

	tx, err := NewTxFromBytes(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, tx.Bytes())
	assert.Equal(t, len(raw), tx.Size())
}

func TestTxBytesRoundTripEmpty(t *testing.T) {
	tx := &Tx{Version: 2, LockTime: 99}

	b := tx.Bytes()
	require.Len(t, b, 10)

	decoded, err := NewTxFromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, tx.Version, decoded.Version)
	assert.Equal(t, tx.LockTime, decoded.LockTime)
	assert.Empty(t, decoded.Inputs)
	assert.Empty(t, decoded.Outputs)
	assert.Equal(t, b, decoded.Bytes())
}

func TestTxBytesNilScripts(t *testing.T) {
	prev, err := chainhash.NewHashFromStr(genesisCoinbaseTxID)
	require.NoError(t, err)

	tx := &Tx{
		Version: 1,
		Inputs: []*TxInput{{
			PreviousOutPoint: OutPoint{Hash: *prev, Index: 0},
			UnlockingScript:  nil,
			SequenceNumber:   math.MaxUint32,
		}},
		Outputs: []*TxOutput{{
			Satoshis:      1000,
			LockingScript: nil,
		}},
	}

	decoded, err := NewTxFromBytes(tx.Bytes())
	require.NoError(t, err)

	assert.Equal(t, tx.Bytes(), decoded.Bytes())
	assert.Equal(t, tx.TxID(), decoded.TxID())
}

func TestNewTxFromBytesTruncated(t *testing.T) {
	raw, err := hex.DecodeString(genesisCoinbaseHex)
	require.NoError(t, err)

	// every strict prefix of a valid transaction must fail to parse
	for i := 0; i < len(raw); i++ {
		_, err := NewTxFromBytes(raw[:i])
		require.Errorf(t, err, "prefix of %d bytes parsed without error", i)
	}
}

func TestNewTxFromBytesTrailingBytes(t *testing.T) {
	raw, err := hex.DecodeString(genesisCoinbaseHex)
	require.NoError(t, err)

	_, err = NewTxFromBytes(append(raw, 0x00))
	require.Error(t, err)
	assert.ErrorContains(t, err, "trailing")
}

func TestNewTxFromBytesOversizedScriptLength(t *testing.T) {
	// version + 1 input with a script length claiming more bytes than remain
	b := []byte{
		0x01, 0x00, 0x00, 0x00, // version
		0x01, // input count
	}
	b = append(b, make([]byte, OutPointSize)...) // previous outpoint
	b = append(b, 0xfd, 0xff, 0xff)              // script length 65535

	_, err := NewTxFromBytes(b)
	require.Error(t, err)
}

func TestNewTxFromStringInvalidHex(t *testing.T) {
	_, err := NewTxFromString("not-hex")
	require.Error(t, err)
}

func TestSignatureHashDiffersFromTxID(t *testing.T) {
	tx, err := NewTxFromString(genesisCoinbaseHex)
	require.NoError(t, err)

	txid := tx.TxIDChainHash()

	seen := map[chainhash.Hash]uint32{}

	for _, sigHashType := range []uint32{0, 1, 2, 3, 0x41, 0x42, 0x43, 0x80} {
		digest := tx.SignatureHash(sigHashType)

		// the appended type bytes mean even type zero never collides with the txid
		assert.False(t, txid.IsEqual(digest), "signature hash for type %d equals txid", sigHashType)

		if prev, ok := seen[*digest]; ok {
			t.Fatalf("signature hash for type %d collides with type %d", sigHashType, prev)
		}

		seen[*digest] = sigHashType
	}
}

func TestSignatureHashDeterministic(t *testing.T) {
	tx, err := NewTxFromString(genesisCoinbaseHex)
	require.NoError(t, err)

	first := tx.SignatureHash(1)
	second := tx.SignatureHash(1)

	assert.True(t, first.IsEqual(second))
}

func TestIsCoinbase(t *testing.T) {
	prev, err := chainhash.NewHashFromStr(genesisCoinbaseTxID)
	require.NoError(t, err)

	nullPoint := OutPoint{Hash: chainhash.Hash{}, Index: math.MaxUint32}
	realPoint := OutPoint{Hash: *prev, Index: 0}

	tests := []struct {
		name   string
		inputs []*TxInput
		want   bool
	}{
		{"single null input", []*TxInput{{PreviousOutPoint: nullPoint}}, true},
		{"single real input", []*TxInput{{PreviousOutPoint: realPoint}}, false},
		{"no inputs", nil, false},
		{"two inputs, first null", []*TxInput{{PreviousOutPoint: nullPoint}, {PreviousOutPoint: realPoint}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Tx{Version: 1, Inputs: tt.inputs}
			assert.Equal(t, tt.want, tx.IsCoinbase())
		})
	}
}

func TestTxClone(t *testing.T) {
	tx, err := NewTxFromString(genesisCoinbaseHex)
	require.NoError(t, err)

	clone := tx.Clone()

	require.Equal(t, tx.Bytes(), clone.Bytes())
	require.Equal(t, tx.TxID(), clone.TxID())

	// mutating the clone must not reach back into the original
	(*clone.Outputs[0].LockingScript)[0] = 0xff
	clone.Outputs[0].Satoshis = 1
	clone.Inputs[0].SequenceNumber = 0

	assert.Equal(t, genesisCoinbaseTxID, tx.TxID())
	assert.Equal(t, uint64(5_000_000_000), tx.TotalOutputSatoshis())
	assert.Equal(t, uint32(math.MaxUint32), tx.Inputs[0].SequenceNumber)
}

func TestTxString(t *testing.T) {
	tx, err := NewTxFromString(genesisCoinbaseHex)
	require.NoError(t, err)

	s := tx.String()

	assert.Contains(t, s, genesisCoinbaseTxID)
	assert.Contains(t, s, "Inputs:")
	assert.Contains(t, s, "Outputs:")
	assert.Contains(t, s, "value = 5000000000")
}
