package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
)

// TxOutput carries a value in satoshis and the locking script guarding it.
type TxOutput struct {
	Satoshis      uint64
	LockingScript *bscript.Script
}

func (out *TxOutput) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\tvalue = %d\n", out.Satoshis))
	sb.WriteString(fmt.Sprintf("\tscript = %s\n", scriptHex(out.LockingScript)))

	return sb.String()
}

func scriptHex(script *bscript.Script) string {
	if script == nil {
		return ""
	}

	return hex.EncodeToString(*script)
}
