package model

import (
	"fmt"
)

// UnspentOutput is a spendable output candidate: the outpoint that created
// it and the value it carries. It is the unit the coin selector works over
// and the row shape the utxo set reports.
type UnspentOutput struct {
	OutPoint OutPoint
	Satoshis uint64
}

func (u *UnspentOutput) String() string {
	return fmt.Sprintf("%s = %d", u.OutPoint.String(), u.Satoshis)
}
