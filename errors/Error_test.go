package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		err := New(ERR_TX_INVALID, "tx has no inputs")
		require.NotNil(t, err)
		assert.Equal(t, ERR_TX_INVALID, err.Code())
		assert.Equal(t, "tx has no inputs", err.Message())
		assert.Nil(t, err.WrappedErr())
	})

	t.Run("formatted message", func(t *testing.T) {
		err := New(ERR_SPENT, "utxo %s:%d already spent", "deadbeef", 1)
		assert.Equal(t, "utxo deadbeef:1 already spent", err.Message())
	})

	t.Run("trailing error becomes wrapped cause", func(t *testing.T) {
		cause := fmt.Errorf("disk full")
		err := New(ERR_STORAGE_ERROR, "failed to persist %d entries", 7, cause)
		assert.Equal(t, "failed to persist 7 entries", err.Message())
		require.NotNil(t, err.WrappedErr())
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("trailing *Error is wrapped as-is", func(t *testing.T) {
		inner := New(ERR_UTXO_NOT_FOUND, "missing")
		outer := New(ERR_PROCESSING, "lookup failed", inner)
		assert.True(t, outer.Is(ErrUtxoNotFound))
	})

	t.Run("undeclared code", func(t *testing.T) {
		err := New(ERR(12345), "whatever")
		assert.Equal(t, "invalid error code", err.Message())
		assert.Equal(t, "ERR(12345)", err.Code().Enum())
	})
}

func TestErrorString(t *testing.T) {
	err := New(ERR_LOCKTIME, "lock time 500 not reached")
	assert.Equal(t, "Error: ERR_LOCKTIME (error code: 72), Message: lock time 500 not reached", err.Error())

	var nilErr *Error

	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Equal(t, ERR_UNKNOWN, nilErr.Code())
}

func TestIs(t *testing.T) {
	spentErr := NewSpentError("utxo %s already spent", "aabbcc")

	require.True(t, Is(spentErr, ErrSpent), "expected error to be of type ERR_SPENT")
	require.False(t, Is(spentErr, ErrTxNotFound))

	t.Run("matches through wrap chain", func(t *testing.T) {
		inner := New(ERR_TX_ALREADY_EXISTS, "dup tx")
		outer := New(ERR_PROCESSING, "ingest failed", inner)
		middle := New(ERR_STORAGE_ERROR, "store failed", outer)

		require.True(t, Is(middle, ErrTxAlreadyExists))
		require.True(t, Is(middle, ErrProcessing))
		require.True(t, Is(middle, ErrStorageError))
		require.False(t, Is(middle, ErrLockTime))
	})
}

func TestAs(t *testing.T) {
	cause := New(ERR_UTXO_NOT_FOUND, "no such utxo")
	err := New(ERR_PROCESSING, "spend failed", cause)

	var tErr *Error

	require.True(t, As(err, &tErr))
	assert.Equal(t, ERR_PROCESSING, tErr.Code())
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join(nil, nil))

	joined := Join(New(ERR_TX_INVALID, "bad tx"), nil, fmt.Errorf("plain"))
	require.NotNil(t, joined)
	assert.Contains(t, joined.Error(), "bad tx")
	assert.Contains(t, joined.Error(), "plain")
}

func TestEnumNames(t *testing.T) {
	for value, name := range ERR_name {
		assert.Equal(t, value, ERR_value[name])
	}

	assert.Equal(t, "ERR_SPENT", ERR_SPENT.Enum())
	assert.Equal(t, "ERR_SPENT", ERR_SPENT.String())
}

func TestIsContextError(t *testing.T) {
	assert.False(t, IsContextError(nil))
	assert.True(t, IsContextError(context.Canceled))
	assert.True(t, IsContextError(context.DeadlineExceeded))
	assert.True(t, IsContextError(NewContextCanceledError("ingest canceled")))
	assert.False(t, IsContextError(NewSpentError("spent")))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"tx range", NewTxNotFoundError("gone"), "transaction"},
		{"utxo range", NewSpentError("spent"), "utxo"},
		{"storage range", NewStorageError("broken"), "storage"},
		{"invalid argument", NewInvalidArgumentError("bad"), "argument"},
		{"not found", NewNotFoundError("missing"), "not_found"},
		{"processing", NewProcessingError("boom"), "processing"},
		{"context", NewContextError("ctx"), "context"},
		{"plain error", fmt.Errorf("anything"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, GetErrorCategory(tt.err), "GetErrorCategory(%v)", tt.err)
		})
	}
}

func TestRootCause(t *testing.T) {
	assert.Nil(t, RootCause(nil))

	inner := New(ERR_UTXO_NOT_FOUND, "missing")
	outer := New(ERR_PROCESSING, "failed", inner)

	root := RootCause(outer)
	require.NotNil(t, root)

	var tErr *Error

	require.True(t, As(root, &tErr))
	assert.Equal(t, ERR_UTXO_NOT_FOUND, tErr.Code())
}
