package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

type Kind string

const (
	KindEVM     Kind = "evm"
	KindSolana  Kind = "solana"
	KindUnknown Kind = "unknown"
)

// Detect 判断地址所属链类型
func Detect(s string) Kind {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if common.IsHexAddress(s) {
			return KindEVM
		}
		return KindUnknown
	}
	raw, err := base58.Decode(s)
	if err == nil && len(raw) == 32 {
		return KindSolana
	}
	return KindUnknown
}

// Normalize returns the canonical form used for blacklist comparison.
// EVM addresses are case-insensitive and become lower-case hex, Solana keys are
// case-sensitive and are kept as is.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if Detect(s) == KindEVM {
		return strings.ToLower(common.HexToAddress(s).Hex())
	}
	return s
}
