package domain

import (
	"strconv"
	"strings"
)

type Address string

// ZeroAddress is the source of mints and the sink of burns.
const ZeroAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) IsZero() bool {
	return a.Equals(ZeroAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is an ERC1155 token type id.
type TokenId uint64

func (i TokenId) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type BlockNumber uint64

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}
