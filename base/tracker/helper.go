package tracker

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/gameanalytics/domain"
)

type Hexable interface {
	Hex() string
}

func ToLowerHexStr(h Hexable) string {
	return strings.ToLower(h.Hex())
}

func toDomainAddress(h Hexable) domain.Address {
	return domain.Address(ToLowerHexStr(h))
}

func toTxHash(h Hexable) domain.TxHash {
	return domain.TxHash(ToLowerHexStr(h))
}

func toTokenId(v *big.Int) (domain.TokenId, error) {
	if v == nil || !v.IsUint64() {
		return 0, xerrors.Errorf("token id %v: %w", v, domain.ErrValueOutOfRange)
	}
	return domain.TokenId(v.Uint64()), nil
}

func toAmount(v *big.Int) (int64, error) {
	if v == nil || !v.IsInt64() {
		return 0, xerrors.Errorf("amount %v: %w", v, domain.ErrValueOutOfRange)
	}
	return v.Int64(), nil
}

type logWithBlockTime struct {
	types.Log
	blockTime time.Time
}
