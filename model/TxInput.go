package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
)

// TxInput spends one previous output. The unlocking script is carried
// opaquely; this package never interprets script contents.
type TxInput struct {
	PreviousOutPoint OutPoint
	UnlockingScript  *bscript.Script
	SequenceNumber   uint32
}

// IsFinal reports whether the input has opted out of lock time enforcement
// by setting its sequence number to the maximum value.
func (in *TxInput) IsFinal() bool {
	return in.SequenceNumber == math.MaxUint32
}

func (in *TxInput) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\thash = %s\n", in.PreviousOutPoint.Hash.String()))
	sb.WriteString(fmt.Sprintf("\tindex = %d\n", in.PreviousOutPoint.Index))
	sb.WriteString(fmt.Sprintf("\tscript = %s\n", scriptHex(in.UnlockingScript)))
	sb.WriteString(fmt.Sprintf("\tsequence = %d\n", in.SequenceNumber))

	return sb.String()
}
