package util

import (
	"fmt"
	"strconv"
	"strings"
)

// CoinSatoshis is the number of satoshis in one coin.
const CoinSatoshis uint64 = 100_000_000

// SatoshisToCoins formats a satoshi amount as a decimal coin string. The
// fractional part is trimmed of trailing zeros and omitted entirely for
// whole amounts, so 150000000 renders as "1.5" and 5000000000 as "50".
func SatoshisToCoins(satoshis uint64) string {
	major := satoshis / CoinSatoshis
	minor := satoshis % CoinSatoshis

	if minor == 0 {
		return strconv.FormatUint(major, 10)
	}

	return fmt.Sprintf("%d.%s", major, strings.TrimRight(fmt.Sprintf("%08d", minor), "0"))
}
