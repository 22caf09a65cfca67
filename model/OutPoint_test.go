package model

import (
	"math"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutPointBytesRoundTrip(t *testing.T) {
	hash, err := chainhash.NewHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	require.NoError(t, err)

	point := &OutPoint{
		Hash:  *hash,
		Index: 7,
	}

	b := point.Bytes()
	require.Len(t, b, OutPointSize)

	decoded, err := NewOutPointFromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, point.Hash, decoded.Hash)
	assert.Equal(t, point.Index, decoded.Index)
}

func TestNewOutPointFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"short", make([]byte, OutPointSize-1)},
		{"long", make([]byte, OutPointSize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOutPointFromBytes(tt.b)
			require.Error(t, err)
		})
	}
}

func TestOutPointIsNull(t *testing.T) {
	null := &OutPoint{
		Hash:  chainhash.Hash{},
		Index: math.MaxUint32,
	}
	assert.True(t, null.IsNull())

	hash, err := chainhash.NewHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	require.NoError(t, err)

	tests := []struct {
		name  string
		point OutPoint
	}{
		{"zero hash, zero index", OutPoint{Hash: chainhash.Hash{}, Index: 0}},
		{"zero hash, index 1", OutPoint{Hash: chainhash.Hash{}, Index: 1}},
		{"real hash, max index", OutPoint{Hash: *hash, Index: math.MaxUint32}},
		{"real hash, zero index", OutPoint{Hash: *hash, Index: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.point.IsNull())
		})
	}
}

func TestOutPointString(t *testing.T) {
	hash, err := chainhash.NewHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	require.NoError(t, err)

	point := &OutPoint{Hash: *hash, Index: 3}

	assert.Equal(t, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b:3", point.String())
}
